// Copyright (C) 2024 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build linux || darwin

package tools

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDockerInteractiveNotTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "stdin"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	c := exec.Command("true")
	err = dockerInteractive(c, f)
	assert.ErrorIs(t, err, ErrNotTerminal)
	assert.ErrorContains(t, err, f.Name())
	assert.Nil(t, c.Process, "command started without a terminal")

	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close(); _ = w.Close() })
	assert.ErrorIs(t, dockerInteractive(exec.Command("true"), r), ErrNotTerminal)
}
