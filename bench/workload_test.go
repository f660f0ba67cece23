// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vatomic/core"
)

func TestCatalog(t *testing.T) {
	var c Cells
	for _, w := range core.Widths {
		var names []string
		for _, wl := range Workloads(&c, w) {
			names = append(names, wl.Name())
		}
		assert.Equal(t, Names, names, "width %v", w)
	}
}

func TestLookup(t *testing.T) {
	var c Cells
	wl, err := Lookup(&c, core.W16, "xor")
	require.NoError(t, err)
	assert.Equal(t, "xor", wl.Name())

	_, err = Lookup(&c, core.W16, "nand")
	assert.ErrorIs(t, err, ErrConfig)
	assert.ErrorContains(t, err, "nand")
}

func TestSelect(t *testing.T) {
	var c Cells
	names := func(sel core.Selection) []string {
		var r []string
		for _, wl := range Select(&c, core.W32, sel) {
			r = append(r, wl.Name())
		}
		return r
	}
	assert.Equal(t, Names, names(core.SelectionAll))
	assert.Equal(t, []string{"add", "sub", "xchg", "and", "or", "xor"}, names(core.SelectionRMWs))
	assert.Equal(t, []string{"cas"}, names(core.SelectionCmpxchg))
	assert.Equal(t, []string{"store"}, names(core.SelectionAccess))
	assert.Equal(t, []string{"flag"}, names(core.SelectionFlags))
	assert.Equal(t, []string{"sb"}, names(core.SelectionFences))
	assert.Empty(t, names(core.SelectionInvalid))
}

func TestWorkloadsShareCells(t *testing.T) {
	var c Cells
	wl, err := Lookup(&c, core.W8, "add")
	require.NoError(t, err)
	cfg := Config{Workers: 1, Iterations: 3, Rounds: 1, Ordering: core.Relaxed, Width: core.W8}
	wl.Reset(cfg)
	wl.Work(0, 3)
	assert.Equal(t, uint8(3), c.U8)
	assert.Zero(t, c.U16)
	assert.NoError(t, wl.Verify(cfg))
	assert.Equal(t, "final=3", wl.Observed())
}

func TestLogicExpected(t *testing.T) {
	var c Cells
	cfg := Config{Workers: 3, Iterations: 1, Rounds: 1, Ordering: core.SeqCst, Width: core.W8}
	for name, exp := range map[string]uint8{"and": 0xf8, "or": 0x07, "xor": 0x07} {
		wl, err := Lookup(&c, core.W8, name)
		require.NoError(t, err)
		wl.Reset(cfg)
		for i := 0; i < cfg.Workers; i++ {
			wl.Work(i, cfg.Iterations)
		}
		assert.Equal(t, exp, c.U8, name)
		assert.NoError(t, wl.Verify(cfg), name)
	}

	// an even number of xors restores the initial value
	cfg.Iterations = 2
	wl, err := Lookup(&c, core.W8, "xor")
	require.NoError(t, err)
	wl.Reset(cfg)
	for i := 0; i < cfg.Workers; i++ {
		wl.Work(i, cfg.Iterations)
	}
	assert.Zero(t, c.U8)
	assert.NoError(t, wl.Verify(cfg))
}

func TestVerifyDetectsCorruption(t *testing.T) {
	var c Cells
	cfg := Config{Workers: 2, Iterations: 10, Rounds: 1, Ordering: core.SeqCst, Width: core.W32}
	for _, name := range []string{"add", "sub", "cas", "and", "store"} {
		wl, err := Lookup(&c, core.W32, name)
		require.NoError(t, err)
		wl.Reset(cfg)
		for i := 0; i < cfg.Workers; i++ {
			wl.Work(i, cfg.Iterations)
		}
		c.U32 = 0x12345
		err = wl.Verify(cfg)
		var verr *VerifyError
		require.ErrorAs(t, err, &verr, name)
		assert.Equal(t, name, verr.Workload)
		assert.Contains(t, err.Error(), name+": verification failed: ")
	}
}

func TestStorePatterns(t *testing.T) {
	w := &storeWorkload[uint32]{workers: 3}
	assert.Equal(t, uint32(0x11111111), w.pattern(0))
	assert.Equal(t, uint32(0x33333333), w.pattern(2))
	assert.True(t, w.valid(0))
	assert.True(t, w.valid(w.pattern(2)))
	assert.False(t, w.valid(w.pattern(3)))
	assert.False(t, w.valid(0x11112222))
}
