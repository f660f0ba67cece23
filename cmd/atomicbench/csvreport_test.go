// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vatomic/bench"
	"vatomic/core"
)

func TestNewReport(t *testing.T) {
	results := []bench.Result{
		{
			Workload: "add", Arch: core.RISCV64, Ordering: core.Release, Width: core.W16,
			Workers: 3, Iterations: 7, Rounds: 2, Duration: time.Millisecond,
			NsPerOp: 1.25, TicksPerOp: 3.5, Observed: "final=42",
		},
		{
			Workload: "cas", Arch: core.AMD64, Ordering: core.SeqCst, Width: core.W64,
			Err: &bench.VerifyError{Workload: "cas", Detail: "final value 1, expected 2"},
		},
		{
			Workload: "xchg", Arch: core.AMD64, Ordering: core.Relaxed, Width: core.W8,
			Err: context.Canceled,
		},
	}
	rows, err := newReport(results)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, reportRow{
		Workload: "add", Workers: 3, Iterations: 7, Rounds: 2,
		NsPerOp: 1.25, TicksPerOp: 3.5, Observed: "final=42", Passed: true,
		Arch: "riscv64", Ordering: "Release", Width: 16, Duration: "1ms",
	}, rows[0])

	assert.False(t, rows[1].Passed)
	assert.Equal(t, "verifyFail", rows[1].Error)
	assert.Equal(t, 2, rows[1].Code)

	assert.Equal(t, "internalError", rows[2].Error)
	assert.Equal(t, 1, rows[2].Code)
}

func TestSaveEmptyFilename(t *testing.T) {
	assert.NoError(t, saveCSV([]reportRow{{Workload: "add"}}, ""))
	assert.NoError(t, saveJSON([]reportRow{{Workload: "add"}}, ""))
}

func TestSaveCSVError(t *testing.T) {
	err := saveCSV([]reportRow{{Workload: "add"}}, t.TempDir())
	assert.Error(t, err)
	assert.False(t, errors.Is(err, bench.ErrConfig))
}
