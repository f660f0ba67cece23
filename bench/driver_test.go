// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bench

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vatomic/core"
)

func testConfig(o core.Ordering, w core.Width) Config {
	return Config{Workers: 4, Iterations: 5000, Rounds: 2, Ordering: o, Width: w}
}

func TestNewDriver(t *testing.T) {
	_, err := NewDriver(Config{}, nil)
	assert.ErrorIs(t, err, ErrConfig)

	d, err := NewDriver(DefaultConfig(), nil)
	require.NoError(t, err)
	assert.NotNil(t, d.Stats())
	assert.Equal(t, DefaultConfig(), d.Config())
}

func TestDriverRun(t *testing.T) {
	var c Cells
	for _, w := range core.Widths {
		for _, o := range []core.Ordering{core.Relaxed, core.AcqRel, core.SeqCst} {
			cfg := testConfig(o, w)
			d, err := NewDriver(cfg, nil)
			require.NoError(t, err)
			for _, name := range []string{"add", "sub", "cas", "xchg", "and", "or", "xor", "store"} {
				wl, err := Lookup(&c, w, name)
				require.NoError(t, err)
				res, err := d.Run(context.Background(), wl)
				require.NoError(t, err, "%s %v %v", name, w, o)
				assert.True(t, res.Passed())
				assert.Equal(t, name, res.Workload)
				assert.Equal(t, core.HostArch(), res.Arch)
				assert.Equal(t, cfg.Rounds, res.Rounds)
				assert.Equal(t, o, res.Ordering)
				assert.Equal(t, w, res.Width)
				assert.Greater(t, res.Duration.Nanoseconds(), int64(0))
				assert.Positive(t, res.NsPerOp)
				assert.NotEmpty(t, res.Observed)
			}
			assert.Equal(t, 8*cfg.Rounds, d.Stats().Count(Passed))
		}
	}
}

type failing struct {
	resets, runs int
}

func (f *failing) Name() string              { return "failing" }
func (f *failing) Selection() core.Selection { return core.SelectionAccess }
func (f *failing) Reset(Config)              { f.resets++ }
func (f *failing) Work(int, int)             {}
func (f *failing) Observed() string          { return "broken" }

func (f *failing) Verify(Config) error {
	f.runs++
	if f.runs == 2 {
		return verifyErrorf(f, "round %d", f.runs)
	}
	return nil
}

func TestDriverStopsAtViolation(t *testing.T) {
	cfg := testConfig(core.SeqCst, core.W32)
	cfg.Rounds = 5
	d, err := NewDriver(cfg, nil)
	require.NoError(t, err)

	f := &failing{}
	res, err := d.Run(context.Background(), f)
	var verr *VerifyError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "failing: verification failed: round 2", err.Error())
	assert.False(t, res.Passed())
	assert.Equal(t, 2, res.Rounds)
	assert.Equal(t, 2, f.resets)
	assert.Equal(t, "broken", res.Observed)
	assert.Equal(t, 1, d.Stats().Count(Passed))
	assert.Equal(t, 1, d.Stats().Count(Violated))
}

func TestDriverCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d, err := NewDriver(testConfig(core.SeqCst, core.W64), nil)
	require.NoError(t, err)
	var c Cells
	wl, err := Lookup(&c, core.W64, "add")
	require.NoError(t, err)

	res, err := d.Run(ctx, wl)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Rounds)
	assert.Zero(t, res.NsPerOp)
	assert.Equal(t, 1, d.Stats().Count(Canceled))
}

func TestDriverPinned(t *testing.T) {
	cfg := testConfig(core.SeqCst, core.W32)
	cfg.Pin = true
	d, err := NewDriver(cfg, nil)
	require.NoError(t, err)
	var c Cells
	wl, err := Lookup(&c, core.W32, "cas")
	require.NoError(t, err)
	_, err = d.Run(context.Background(), wl)
	assert.NoError(t, err)
}

func TestTicksAdvance(t *testing.T) {
	a := Ticks()
	var c Cells
	wl, err := Lookup(&c, core.W32, "add")
	require.NoError(t, err)
	wl.Reset(testConfig(core.SeqCst, core.W32))
	wl.Work(0, 100000)
	assert.Greater(t, Ticks(), a)
}
