// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

// Package supervisor controls the lifecycle of the game server's
// long-running child processes (auth, world, armory): status, start,
// stop, restart, and self-restart of the supervisor itself.
package supervisor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/surrealabs/sdbeditor/internal/config"
)

// Service names one of the three managed game-server processes.
type Service string

const (
	ServiceAuth   Service = "auth"
	ServiceWorld  Service = "world"
	ServiceArmory Service = "armory"
)

// Services lists every managed service, in a stable order.
func Services() []Service {
	return []Service{ServiceAuth, ServiceWorld, ServiceArmory}
}

func (s Service) valid() bool {
	switch s {
	case ServiceAuth, ServiceWorld, ServiceArmory:
		return true
	default:
		return false
	}
}

// Supervisor spawns and signals the binaries named in a
// config.StarterConfig's paths.
type Supervisor struct {
	paths config.SupervisorPaths
}

// New returns a Supervisor bound to paths.
func New(paths config.SupervisorPaths) *Supervisor {
	return &Supervisor{paths: paths}
}

func (sv *Supervisor) binPath(service Service) (string, error) {
	switch service {
	case ServiceAuth:
		return sv.paths.AuthBin, nil
	case ServiceWorld:
		return sv.paths.WorldBin, nil
	case ServiceArmory:
		return sv.paths.ArmoryBin, nil
	default:
		return "", fmt.Errorf("supervisor: unknown service %q", service)
	}
}

// pattern returns the full-command substring used to match running
// instances of service, defaulting to the service's own name.
func (sv *Supervisor) pattern(service Service) string {
	if p, ok := sv.paths.ProcessPatterns[string(service)]; ok && p != "" {
		return p
	}
	return string(service)
}

func (sv *Supervisor) logPath(service Service) string {
	return filepath.Join(sv.paths.LogsDir, string(service)+".log")
}

// Status reports whether service is running and the PIDs of every
// process whose full command line matches its pattern.
func (sv *Supervisor) Status(service Service) (*StatusResult, error) {
	if !service.valid() {
		return nil, fmt.Errorf("supervisor: unknown service %q", service)
	}
	pids, err := findPIDs(sv.pattern(service))
	if err != nil {
		return nil, err
	}
	return &StatusResult{Running: len(pids) > 0, PIDs: pids}, nil
}

// StatusResult is what Status reports for one service.
type StatusResult struct {
	Running bool  `json:"running"`
	PIDs    []int `json:"pids"`
}

// Start spawns service's binary detached from this process: a new
// session, stdin=/dev/null, stdout and stderr appended to its log
// file under LogsDir. It returns the child's PID.
func (sv *Supervisor) Start(service Service) (int, error) {
	if !service.valid() {
		return 0, fmt.Errorf("supervisor: unknown service %q", service)
	}
	bin, err := sv.binPath(service)
	if err != nil {
		return 0, err
	}
	if bin == "" {
		return 0, fmt.Errorf("supervisor: no binary configured for %q", service)
	}

	if err := os.MkdirAll(sv.paths.LogsDir, 0o755); err != nil {
		return 0, fmt.Errorf("supervisor: create logs dir: %w", err)
	}
	logFile, err := os.OpenFile(sv.logPath(service), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("supervisor: open log file: %w", err)
	}
	defer logFile.Close()

	devNull, err := os.OpenFile(os.DevNull, os.O_RDONLY, 0)
	if err != nil {
		return 0, fmt.Errorf("supervisor: open %s: %w", os.DevNull, err)
	}
	defer devNull.Close()

	cmd := exec.Command(bin)
	if sv.paths.AcoreRoot != "" {
		cmd.Dir = sv.paths.AcoreRoot
	}
	cmd.Stdin = devNull
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	configureDetached(cmd)

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("supervisor: start %s: %w", service, err)
	}
	// The child is detached; its process table slot is released by
	// the OS once it exits, not by us waiting on it.
	go cmd.Process.Release()

	return cmd.Process.Pid, nil
}

// Stop sends SIGTERM to every running instance of service.
func (sv *Supervisor) Stop(service Service) error {
	if !service.valid() {
		return fmt.Errorf("supervisor: unknown service %q", service)
	}
	pids, err := findPIDs(sv.pattern(service))
	if err != nil {
		return err
	}
	for _, pid := range pids {
		if err := signalTerm(pid); err != nil {
			return fmt.Errorf("supervisor: signal pid %d: %w", pid, err)
		}
	}
	return nil
}

// Restart stops every running instance of service and starts a fresh
// one once the signal has been delivered.
func (sv *Supervisor) Restart(service Service) (int, error) {
	if err := sv.Stop(service); err != nil {
		return 0, err
	}
	return sv.Start(service)
}

// selfRestartDelay is how long SelfRestart waits after spawning the
// replacement before exiting, giving the caller's HTTP response time
// to flush.
const selfRestartDelay = 500 * time.Millisecond

// SelfRestart spawns a fresh copy of the running supervisor binary,
// logging to a freshly dated log file so the new instance's output
// never truncates the old one's, then schedules this process to exit
// after selfRestartDelay.
func (sv *Supervisor) SelfRestart() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("supervisor: resolve own executable: %w", err)
	}

	if err := os.MkdirAll(sv.paths.LogsDir, 0o755); err != nil {
		return fmt.Errorf("supervisor: create logs dir: %w", err)
	}
	logName := fmt.Sprintf("supervisor-%s.log", time.Now().Format("01-02-2006-150405"))
	logFile, err := os.OpenFile(filepath.Join(sv.paths.LogsDir, logName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("supervisor: open log file: %w", err)
	}
	defer logFile.Close()

	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Stdin = nil
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	configureDetached(cmd)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("supervisor: spawn replacement: %w", err)
	}
	go cmd.Process.Release()

	go func() {
		time.Sleep(selfRestartDelay)
		os.Exit(0)
	}()
	return nil
}
