// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bench

import (
	"errors"
	"fmt"

	"vatomic/core"
)

// ErrConfig is returned for invalid benchmark configurations.
var ErrConfig = errors.New("invalid benchmark configuration")

// Config is the configuration of a benchmark run.
type Config struct {
	// Workers is the number of concurrent goroutines.
	Workers int
	// Iterations is the number of operations of each worker per round.
	Iterations int
	// Rounds is the number of times the workload is repeated.
	Rounds int
	// Ordering is the memory ordering of the measured operations.
	Ordering core.Ordering
	// Width is the width of the measured cell.
	Width core.Width
	// Pin binds worker i to CPU i modulo the number of CPUs.
	Pin bool
}

const (
	defaultWorkers    = 2
	defaultIterations = 1000000
)

// DefaultConfig returns two workers doing a million sequentially consistent
// operations on a 32-bit cell, once.
func DefaultConfig() Config {
	return Config{
		Workers:    defaultWorkers,
		Iterations: defaultIterations,
		Rounds:     1,
		Ordering:   core.SeqCst,
		Width:      core.W32,
	}
}

// Validate returns an error wrapping ErrConfig if c cannot be run.
func (c Config) Validate() error {
	switch {
	case c.Workers < 1:
		return fmt.Errorf("%w: %d workers", ErrConfig, c.Workers)
	case c.Iterations < 1:
		return fmt.Errorf("%w: %d iterations", ErrConfig, c.Iterations)
	case c.Rounds < 1:
		return fmt.Errorf("%w: %d rounds", ErrConfig, c.Rounds)
	case !c.Width.Valid():
		return fmt.Errorf("%w: %d-bit cells", ErrConfig, c.Width.Bits())
	}
	for _, o := range core.Orderings {
		if o == c.Ordering {
			return nil
		}
	}
	return fmt.Errorf("%w: ordering %v", ErrConfig, c.Ordering)
}

// Ops returns the number of operations of one round.
func (c Config) Ops() int {
	return c.Workers * c.Iterations
}
