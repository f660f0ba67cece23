// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tools contains helpers to cross-build the benchmark and run it in a
// container of another architecture, as well as wrappers to run commands and
// to create and remove files.
package tools

import (
	"context"
	"fmt"
	"strings"

	"vatomic/core"
	"vatomic/logger"
)

func init() {
	RegEnv("GO_CMD", "go", "Go toolchain used to cross-build the benchmark")
}

// BuildEnv returns the environment assignments of a static build for arch.
func BuildEnv(arch core.Arch) ([]string, error) {
	if arch.GOARCH() == "" {
		return nil, fmt.Errorf("no backend for architecture %v", arch)
	}
	return []string{
		"GOOS=linux",
		"GOARCH=" + arch.GOARCH(),
		"CGO_ENABLED=0",
	}, nil
}

// CrossBuild builds the package pkg for linux/arch into the binary out.
func CrossBuild(ctx context.Context, arch core.Arch, pkg, out string) error {
	goCmd, err := FindCmd("GO_CMD", "go")
	if err != nil {
		return err
	}
	env, err := BuildEnv(arch)
	if err != nil {
		return err
	}

	var (
		cmd     = goCmd[0]
		cmdArgs = append(goCmd[1:], "build", "-o", out, pkg)
	)

	logger.Info("Cross-building for", arch)
	logger.Infof("%v %v %v", strings.Join(env, " "), cmd, strings.Join(cmdArgs, " "))
	o, err := RunCmdContext(ctx, cmd, cmdArgs, env)
	logger.Debugf("%v", o)
	if err != nil {
		return fmt.Errorf("cross-build failed: %w", err)
	}
	return nil
}
