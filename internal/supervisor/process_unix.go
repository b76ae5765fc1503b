// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

//go:build unix || linux || darwin

package supervisor

import (
	"errors"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
)

// configureDetached starts cmd in its own session so it survives this
// process exiting or restarting.
func configureDetached(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}

// signalTerm sends SIGTERM to pid. A process that no longer exists is
// not treated as failure; any other signal error, including permission
// denied, is returned.
func signalTerm(pid int) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	err = proc.Signal(syscall.SIGTERM)
	if err == syscall.ESRCH || errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	return err
}

// findPIDs scans /proc for processes whose full command line (argv
// joined by spaces, matching what `ps` would show) contains pattern.
// There is no pack dependency for process enumeration by command
// line, so this walks /proc directly the way the kernel exposes it on
// Linux.
func findPIDs(pattern string) ([]int, error) {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return nil, err
	}

	var pids []int
	for _, entry := range entries {
		pid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}
		cmdline, err := os.ReadFile("/proc/" + entry.Name() + "/cmdline")
		if err != nil {
			continue
		}
		joined := strings.ReplaceAll(string(cmdline), "\x00", " ")
		if strings.Contains(joined, pattern) {
			pids = append(pids, pid)
		}
	}
	return pids, nil
}
