// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package core

//go:generate go run golang.org/x/tools/cmd/stringer -type=Ordering

// Ordering represents the memory ordering of an atomic operation.
// The zero value is Invalid; the facade treats it as SeqCst.
type Ordering int

const (
	// Invalid  memory ordering
	Invalid Ordering = iota
	// SeqCst memory ordering
	SeqCst
	// Acquire memory ordering
	Acquire
	// Release memory ordering
	Release
	// Relaxed memory ordering
	Relaxed
	// AcqRel memory ordering
	AcqRel
)

// Orderings lists the valid orderings from weakest to strongest.
var Orderings = []Ordering{Relaxed, Acquire, Release, AcqRel, SeqCst}

// ParseOrdering parses the C11-style name of an ordering.
func ParseOrdering(s string) Ordering {
	switch s {
	case "rlx", "relaxed":
		return Relaxed
	case "acq", "acquire":
		return Acquire
	case "rel", "release":
		return Release
	case "acq_rel", "acqrel":
		return AcqRel
	case "seq_cst", "seqcst", "sc":
		return SeqCst
	default:
		return Invalid
	}
}

// HasAcquire returns whether o orders later accesses after the operation.
func (o Ordering) HasAcquire() bool {
	return o == Acquire || o == AcqRel || o == SeqCst
}

// HasRelease returns whether o orders earlier accesses before the operation.
func (o Ordering) HasRelease() bool {
	return o == Release || o == AcqRel || o == SeqCst
}

// Bits returns the ordering as an aq/rl bit pair: aq is bit 1, rl is bit 0.
// AcqRel and SeqCst share 0b11.
func (o Ordering) Bits() int {
	var b int
	if o.HasAcquire() {
		b |= 0b10
	}
	if o.HasRelease() {
		b |= 0b01
	}
	return b
}

// Join returns the weakest ordering carrying the guarantees of both o and p.
func (o Ordering) Join(p Ordering) Ordering {
	switch {
	case o == Invalid || p == Invalid:
		return Invalid
	case o == SeqCst || p == SeqCst:
		return SeqCst
	}
	return map4[o.Bits()|p.Bits()]
}

// ReadHalf returns the ordering of a plain read carrying only the acquire
// component of o. SeqCst stays SeqCst.
func (o Ordering) ReadHalf() Ordering {
	switch o {
	case Acquire, AcqRel:
		return Acquire
	case SeqCst:
		return SeqCst
	default:
		return Relaxed
	}
}

// Suffix returns the function-name suffix used for o, empty for SeqCst.
func (o Ordering) Suffix() string {
	switch o {
	case Relaxed:
		return "_rlx"
	case Acquire:
		return "_acq"
	case Release:
		return "_rel"
	case AcqRel:
		return "_acq_rel"
	default:
		return ""
	}
}

var (
	map4 = map[int]Ordering{
		0b00: Relaxed,
		0b01: Release,
		0b10: Acquire,
		0b11: AcqRel,
	}

	orderMap = map[AtomicOp]map[int]Ordering{
		Load: {
			0b00: Relaxed,
			0b10: Acquire,
			0b11: SeqCst,
		},
		Store: {
			0b00: Relaxed,
			0b01: Release,
			0b11: SeqCst,
		},
	}
)
