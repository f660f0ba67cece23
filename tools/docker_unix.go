// Copyright (C) 2024 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build linux || darwin

package tools

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/term"

	"vatomic/logger"
)

// dockerInteractive runs c on a pty wired to the terminal of in. The
// terminal stays in raw mode until c exits.
func dockerInteractive(c *exec.Cmd, in *os.File) error {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("%w: %s", ErrNotTerminal, in.Name())
	}

	ptmx, err := pty.Start(c)
	if err != nil {
		return fmt.Errorf("could not start %s on a pty: %w", c.Path, err)
	}
	defer func() { _ = ptmx.Close() }()

	state, err := term.MakeRaw(fd)
	if err != nil {
		_ = c.Process.Kill()
		_ = c.Wait()
		return fmt.Errorf("could not set %s to raw mode: %w", in.Name(), err)
	}
	defer func() { _ = term.Restore(fd, state) }()

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	defer func() { signal.Stop(winch); close(winch) }()
	go func() {
		for range winch {
			if err := pty.InheritSize(in, ptmx); err != nil {
				logger.Warnf("could not resize pty: %v", err)
			}
		}
	}()
	winch <- syscall.SIGWINCH

	// the stdin copy only returns on the keystroke after c exits
	go func() { _, _ = io.Copy(ptmx, in) }()
	_, _ = io.Copy(os.Stdout, ptmx)
	return c.Wait()
}
