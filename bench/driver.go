// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bench

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"vatomic/core"
	"vatomic/logger"
)

// Result is the outcome of running a workload.
type Result struct {
	Workload   string
	Arch       core.Arch
	Ordering   core.Ordering
	Width      core.Width
	Workers    int
	Iterations int
	Rounds     int
	// Duration is the wall-clock time of all rounds.
	Duration time.Duration
	// RoundSD is the standard deviation of the round durations.
	RoundSD    time.Duration
	NsPerOp    float64
	TicksPerOp float64
	Observed   string
	Err        error
}

// Passed returns whether every round verified.
func (r Result) Passed() bool {
	return r.Err == nil
}

// Driver runs workloads with a configuration.
type Driver struct {
	cfg   Config
	stats *Stats
}

// NewDriver creates a driver for cfg recording into stats. If stats is nil,
// the driver uses its own.
func NewDriver(cfg Config, stats *Stats) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if stats == nil {
		stats = NewStats()
	}
	return &Driver{cfg: cfg, stats: stats}, nil
}

// Config returns the configuration of the driver.
func (d *Driver) Config() Config {
	return d.cfg
}

// Stats returns the statistics recorded by the driver.
func (d *Driver) Stats() *Stats {
	return d.stats
}

// Run runs all rounds of w. It stops at the first round that fails
// verification and returns its *VerifyError.
func (d *Driver) Run(ctx context.Context, w Workload) (Result, error) {
	var (
		cfg = d.cfg
		res = Result{
			Workload:   w.Name(),
			Arch:       core.HostArch(),
			Ordering:   cfg.Ordering,
			Width:      cfg.Width,
			Workers:    cfg.Workers,
			Iterations: cfg.Iterations,
		}
		elapsed time.Duration
		ticks   uint64
		tag     = w.Name()
	)

	for r := 0; r < cfg.Rounds; r++ {
		w.Reset(cfg)
		logger.Debugf("%s: round %d", tag, r)
		e, t, err := d.round(ctx, w)
		if err != nil {
			d.stats.Inc(Canceled)
			res.Err = err
			break
		}
		res.Rounds++
		elapsed += e
		ticks += t
		d.stats.AddTime(tag, e)
		d.stats.Add(tag+" ticks", float64(t))

		if err := w.Verify(cfg); err != nil {
			d.stats.Inc(Violated)
			res.Err = err
			break
		}
		d.stats.Inc(Passed)
	}

	res.Duration = elapsed
	_, res.RoundSD = d.stats.GetTime(tag)
	if ops := float64(res.Rounds * cfg.Ops()); ops > 0 {
		res.NsPerOp = float64(elapsed.Nanoseconds()) / ops
		res.TicksPerOp = float64(ticks) / ops
	}
	res.Observed = w.Observed()

	var verr *VerifyError
	if errors.As(res.Err, &verr) {
		logger.Debugf("%s: %v", tag, verr)
	}
	return res, res.Err
}

// round runs the workers of one round. They are released together once all
// of them are running on their own OS thread.
func (d *Driver) round(ctx context.Context, w Workload) (time.Duration, uint64, error) {
	var (
		cfg   = d.cfg
		ready sync.WaitGroup
		start = make(chan struct{})
	)
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	g, ctx := errgroup.WithContext(ctx)
	ready.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		i := i
		g.Go(func() error {
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			if cfg.Pin {
				if err := pin(i); err != nil {
					logger.Warnf("worker %d: could not pin: %v", i, err)
				}
			}
			ready.Done()
			select {
			case <-start:
			case <-ctx.Done():
				return ctx.Err()
			}
			w.Work(i, cfg.Iterations)
			return nil
		})
	}

	ready.Wait()
	var (
		t0 = time.Now()
		c0 = Ticks()
	)
	close(start)
	err := g.Wait()
	var (
		c1 = Ticks()
		e  = time.Since(t0)
	)
	return e, c1 - c0, err
}
