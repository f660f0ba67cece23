// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vatomic/core"
)

type stringer string

func (s stringer) String() string { return string(s) }

func TestFiles(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	fn, err := Touch("bench-*")
	require.NoError(t, err)
	assert.NoError(t, FileExists(fn))
	assert.True(t, strings.HasPrefix(filepath.Base(fn), "bench-"))

	require.NoError(t, Dump(stringer("define void @f()"), fn))
	data, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.Equal(t, "define void @f()", string(data))

	require.NoError(t, Remove(fn))
	assert.Error(t, FileExists(fn))
}

func TestRunCmd(t *testing.T) {
	out, err := RunCmd("sh", []string{"-c", "echo $TOOLS_X"}, []string{"TOOLS_X=hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", out)

	out, err = RunCmd("sh", []string{"-c", "echo broken; exit 3"}, nil)
	assert.Equal(t, "broken", out)
	assert.ErrorContains(t, err, "exit status 3")

	_, err = RunCmd("tools-test-no-such-command", nil, nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = RunCmdContext(ctx, "sleep", []string{"1"}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildEnv(t *testing.T) {
	env, err := BuildEnv(core.RISCV64)
	require.NoError(t, err)
	assert.Equal(t, []string{"GOOS=linux", "GOARCH=riscv64", "CGO_ENABLED=0"}, env)

	_, err = BuildEnv(core.InvalidArch)
	assert.Error(t, err)
}

func TestCrossBuild(t *testing.T) {
	t.Setenv("GO_CMD", "echo go")
	assert.NoError(t, CrossBuild(context.Background(), core.RISCV64, "./cmd/atomicbench", "out"))

	t.Setenv("GO_CMD", "false")
	assert.ErrorContains(t, CrossBuild(context.Background(), core.AMD64, ".", "out"), "cross-build failed")
}
