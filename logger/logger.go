// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package logger implements a simple logger with a few error levels.
//
// The logger may be used from several goroutines; every call writes and
// flushes its output atomically.
package logger

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level represents the amount of detail in which the log is output.
type Level int

const (
	fatal Level = iota
	// ERROR only log errors
	ERROR
	// WARN only log warnings and errors
	WARN
	// INFO log information, warnings and errors
	INFO
	// DEBUG log as much as possible
	DEBUG
)

var levelNames = []string{"FATAL", "ERROR", "WARN", "INFO", "DEBUG"}

func (l Level) String() string {
	if l < fatal || int(l) >= len(levelNames) {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel parses a level name such as "debug" or "WARN".
func ParseLevel(s string) (Level, error) {
	for i, n := range levelNames[ERROR:] {
		if strings.EqualFold(n, s) {
			return Level(i) + ERROR, nil
		}
	}
	return fatal, fmt.Errorf("unknown log level %q", s)
}

var (
	mu     sync.Mutex
	logger *bufio.Writer
	level  = INFO
)

func init() {
	logger = bufio.NewWriter(os.Stdout)
}

// SetFileDescriptor sets the file descriptor to which the output is sent.
// If fd is nil, no output is shown.
func SetFileDescriptor(fd *os.File) {
	if fd == nil {
		SetWriter(nil)
		return
	}
	SetWriter(fd)
}

// SetWriter works as SetFileDescriptor for any writer.
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		logger = nil
		return
	}
	logger = bufio.NewWriter(w)
}

// SetLevel reconfigures the error level of the logger.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// GetLevel returns the current error level.
func GetLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return level
}

// Fatal works as Error, but aborts the program.
func Fatal(args ...any) {
	Println(args...)
	fail()
}

// Fatalf works as Errorf, but aborts the program.
func Fatalf(format string, args ...any) {
	Printf(format+"\n", args...)
	fail()
}

// Error works as fmt.Print, but it adds a newline at the end of the format string.
func Error(args ...any) {
	if enabled(ERROR) {
		Println(args...)
	}
}

// Errorf works as fmt.Printf, but it adds a newline at the end of the format string.
func Errorf(format string, args ...any) {
	if enabled(ERROR) {
		Printf(format+"\n", args...)
	}
}

// Warn works as fmt.Print when error level is WARN. It adds a newline at the end of the format string.
func Warn(args ...any) {
	if enabled(WARN) {
		Println(args...)
	}
}

// Warnf works as fmt.Printf when error level is WARN. It adds a newline at the end of the format string.
func Warnf(format string, args ...any) {
	if enabled(WARN) {
		Printf(format+"\n", args...)
	}
}

// Info works as fmt.Print when error level is INFO. It adds a newline at the end of the format string.
func Info(args ...any) {
	if enabled(INFO) {
		Println(args...)
	}
}

// Infof works as fmt.Printf when error level is INFO. It adds a newline at the end of the format string.
func Infof(format string, args ...any) {
	if enabled(INFO) {
		Printf(format+"\n", args...)
	}
}

// Debug works as fmt.Print when error level is DEBUG. It adds a newline at the end of the format string.
func Debug(args ...any) {
	if enabled(DEBUG) {
		Println(args...)
	}
}

// Debugf works as fmt.Printf when error level is DEBUG. It adds a newline at the end of the format string.
func Debugf(format string, args ...any) {
	if enabled(DEBUG) {
		Printf(format+"\n", args...)
	}
}

// Print works as fmt.Print, but flushes the file descriptor.
func Print(args ...any) {
	write(fmt.Sprint(args...))
}

// Println works as fmt.Println, but flushes the file descriptor.
func Println(args ...any) {
	write(fmt.Sprintln(args...))
}

// Printf works as fmt.Printf, but flushes the file descriptor.
func Printf(format string, args ...any) {
	write(fmt.Sprintf(format, args...))
}

func enabled(l Level) bool {
	mu.Lock()
	defer mu.Unlock()
	return logger != nil && level >= l
}

func write(s string) {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		return
	}
	if _, err := logger.WriteString(s); err != nil {
		fail()
	}
	if logger.Flush() != nil {
		fail()
	}
}

func fail() {
	// use fatal instead of panic to make linter happy
	log.Fatal()
}
