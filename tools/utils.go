// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package tools

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"vatomic/logger"
)

const fileMode = 0600

// Touch creates a new empty file in the current directory with the given
// file pattern and returns its name.
func Touch(pattern string) (string, error) {
	tmp, err := os.CreateTemp(".", pattern)
	if err != nil {
		return "", err
	}
	if err := tmp.Close(); err != nil {
		logger.Warnf("error closing file: %v", err)
	}
	return tmp.Name(), nil
}

// RunCmd runs a command line with arguments and environment variable assignments
func RunCmd(cmdl string, args, env []string) (string, error) {
	return RunCmdContext(context.Background(), cmdl, args, env)
}

// RunCmdContext runs a command line with arguments and environment variable assignments and a context
func RunCmdContext(ctx context.Context, cmdl string, args, env []string) (string, error) {
	logger.Debug(append(append(env, cmdl), args...))
	cmd := exec.CommandContext(ctx, cmdl, args...)
	cmd.Env = append(os.Environ(), env...)
	out, err := cmd.CombinedOutput()

	sout := strings.TrimSuffix(string(out), "\n")
	if err == nil {
		return sout, nil
	}
	if ctx.Err() != nil {
		return sout, ctx.Err()
	}
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return sout, err
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if sout != "" {
			return sout, fmt.Errorf("%v: %s", err, sout)
		}
		return sout, err
	}
	return sout, fmt.Errorf("unknown error: %v", err)
}

// MockFileExistsErr is a mock error returned by FileExists in tests
var MockFileExistsErr error

// FileExists returns nil if a file exists otherwise an error
func FileExists(fn string) error {
	if MockFileExistsErr != nil {
		return MockFileExistsErr
	}
	if _, err := os.Stat(fn); os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", fn)
	}
	return nil
}

const enableRemove = true

// Remove deletes as file. It can be disabled with the enableRemove flag in the source.
func Remove(fn string) error {
	logger.Debugf("Remove file '%s'", fn)
	if enableRemove {
		return os.Remove(fn)
	}
	return nil
}

// Dump writes the string form of m to a file.
func Dump(m fmt.Stringer, fn string) error {
	logger.Debugf("Dump file '%s'", fn)
	out, err := os.OpenFile(fn,
		os.O_TRUNC|os.O_WRONLY|os.O_CREATE, fileMode)
	if err != nil {
		return err
	}
	defer func() {
		if err := out.Close(); err != nil {
			logger.Warnf("error closing file: %v", err)
		}
	}()
	_, err = fmt.Fprint(out, m)
	return err
}
