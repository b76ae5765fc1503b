// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

// Package applog is the leveled logging helper the HTTP servers and CLI
// commands log through, writing to a rotated file sink via
// gopkg.in/natefinch/lumberjack.v2.
package applog

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Level is a log severity, ordered low to high.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

// Logger is a component-tagged, leveled wrapper over the stdlib log
// package writing to a rotated file plus stderr.
type Logger struct {
	component string
	min       Level
	l         *log.Logger
}

// Dir is the directory rotated log files are written under. Overridable
// for tests; defaults to "logs" relative to the working directory.
var Dir = "logs"

// New returns a Logger for component, rotating into
// <Dir>/<component>-<MM-DD-YYYY>.log at 10MB/7 backups.
func New(component string) *Logger {
	datedName := fmt.Sprintf("%s-%s.log", component, time.Now().Format("01-02-2006"))
	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(Dir, datedName),
		MaxSize:    10, // megabytes
		MaxBackups: 7,
		Compress:   false,
	}
	out := io.MultiWriter(os.Stderr, rotator)
	return &Logger{
		component: component,
		min:       LevelInfo,
		l:         log.New(out, "", log.LstdFlags),
	}
}

// SetLevel adjusts the minimum level this logger emits.
func (lg *Logger) SetLevel(min Level) { lg.min = min }

func (lg *Logger) log(level Level, format string, args ...interface{}) {
	if level < lg.min {
		return
	}
	msg := fmt.Sprintf(format, args...)
	lg.l.Printf("[%s] %s: %s", level, lg.component, msg)
}

func (lg *Logger) Debug(format string, args ...interface{}) { lg.log(LevelDebug, format, args...) }
func (lg *Logger) Info(format string, args ...interface{})  { lg.log(LevelInfo, format, args...) }
func (lg *Logger) Warn(format string, args ...interface{})  { lg.log(LevelWarn, format, args...) }
func (lg *Logger) Error(format string, args ...interface{}) { lg.log(LevelError, format, args...) }
