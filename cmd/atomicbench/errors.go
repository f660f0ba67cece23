// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"os/exec"

	"vatomic/bench"
	"vatomic/logger"
)

type errorType int

//go:generate go run golang.org/x/tools/cmd/stringer -type=errorType
const (
	noError       errorType = 0
	internalError errorType = 1
	verifyFail    errorType = 2
)

type vError struct {
	typ errorType
	err error
}

// vfail reports a failed verification. The summary already shows the
// failure, so the error has no message.
func vfail(err error) *vError {
	return &vError{
		typ: verifyFail,
		err: err,
	}
}

func (e *vError) Error() string {
	switch e.typ {
	case verifyFail:
		logger.Debugf("%v: %v", e.typ, e.err)
		return ""
	default:
		return e.err.Error()
	}
}

func (e *vError) Unwrap() error {
	return e.err
}

func (e *vError) Code() int {
	return int(e.typ)
}

func verror(typ errorType, err error) *vError {
	return &vError{
		typ: typ,
		err: err,
	}
}

func getErrorType(err error) string {
	if err == nil {
		return noError.String()
	}
	var (
		ve   *vError
		verr *bench.VerifyError
	)
	switch {
	case errors.As(err, &ve):
		return ve.typ.String()
	case errors.As(err, &verr):
		return verifyFail.String()
	default:
		return internalError.String()
	}
}

func getErrorCode(err error) int {
	if err == nil {
		return 0
	}
	var (
		ve      *vError
		exitErr *exec.ExitError
	)
	switch {
	case errors.As(err, &ve):
		return ve.Code()
	case errors.As(err, &exitErr):
		return exitErr.ExitCode()
	default:
		return int(internalError)
	}
}

func getErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// configError reports invalid user input. The error always wraps
// bench.ErrConfig.
func configError(format string, args ...any) *vError {
	err := fmt.Errorf(format, args...)
	if !errors.Is(err, bench.ErrConfig) {
		err = fmt.Errorf("%w: %v", bench.ErrConfig, err)
	}
	return verror(internalError, err)
}
