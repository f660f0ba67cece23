// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bench

import (
	"golang.org/x/sys/cpu"

	"vatomic/vatomic"
)

// Cells are the shared locations the workloads operate on. Each cell is on
// its own cache line.
type Cells struct {
	_   cpu.CacheLinePad
	U8  uint8
	_   cpu.CacheLinePad
	U16 uint16
	_   cpu.CacheLinePad
	U32 uint32
	_   cpu.CacheLinePad
	U64 uint64
	_   cpu.CacheLinePad

	// Lock guards Guarded in the flag workload.
	Lock    vatomic.Flag
	_       cpu.CacheLinePad
	Guarded uint64
	_       cpu.CacheLinePad

	// X and Y are the store-buffering litmus variables. Arrive counts the
	// barrier crossings of the litmus pair.
	X      uint32
	_      cpu.CacheLinePad
	Y      uint32
	_      cpu.CacheLinePad
	Arrive uint64
	_      cpu.CacheLinePad
}

var cells Cells

// Shared returns the cells of the process.
func Shared() *Cells {
	return &cells
}
