// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package applog is a leveled logger for the application layer
// (cmd/stickfigctl). The core packages (skeleton, math2d, constraint,
// fabrik, fk, persist) never log; they return skeleton.Result/error
// values and leave reporting to their caller.
package applog

import (
	"fmt"
	"os"
	"time"
)

// Levels to filter log output.
const (
	DEBUG = iota
	INFO
	WARN
	ERROR
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// Logger writes leveled, timestamped messages to a single output.
type Logger struct {
	prefix string
	level  int
	out    *os.File
}

// New creates a Logger with the given prefix, writing to stderr at
// INFO level by default.
func New(prefix string) *Logger {

	return &Logger{prefix: prefix, level: INFO, out: os.Stderr}
}

// SetLevel sets the minimum level this logger emits.
func (l *Logger) SetLevel(level int) {

	if level < DEBUG || level > ERROR {
		return
	}
	l.level = level
}

func (l *Logger) log(level int, format string, v ...interface{}) {

	if level < l.level {
		return
	}
	now := time.Now().UTC()
	msg := fmt.Sprintf(format, v...)
	fmt.Fprintf(l.out, "%s:%s:%s:%s\n", now.Format("15:04:05.000000"), levelNames[level][:1], l.prefix, msg)
}

// Debug emits a DEBUG level log message.
func (l *Logger) Debug(format string, v ...interface{}) { l.log(DEBUG, format, v...) }

// Info emits an INFO level log message.
func (l *Logger) Info(format string, v ...interface{}) { l.log(INFO, format, v...) }

// Warn emits a WARN level log message.
func (l *Logger) Warn(format string, v ...interface{}) { l.log(WARN, format, v...) }

// Error emits an ERROR level log message.
func (l *Logger) Error(format string, v ...interface{}) { l.log(ERROR, format, v...) }
