// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOp is returned for descriptors with an unknown operation.
	ErrInvalidOp = errors.New("invalid atomic operation")
	// ErrInvalidWidth is returned for unsupported location widths.
	ErrInvalidWidth = errors.New("invalid width")
	// ErrInvalidOrdering is returned when an ordering cannot apply to an operation.
	ErrInvalidOrdering = errors.New("invalid memory ordering")
)

// Descriptor is the (operation, width, ordering) triple that selects exactly one
// instruction sequence. Flags and fences have no width.
type Descriptor struct {
	Op       AtomicOp
	Width    Width
	Ordering Ordering
}

// Validate returns an error if the descriptor cannot be resolved.
func (d Descriptor) Validate() error {
	if d.Op <= InvalidOp || d.Op > Fence {
		return fmt.Errorf("%w: %v", ErrInvalidOp, d.Op)
	}
	if d.Op.HasWidth() && !d.Width.Valid() {
		return fmt.Errorf("%w: %v on %d bits", ErrInvalidWidth, d.Op, int(d.Width))
	}
	if !d.Op.Legal(d.Ordering) {
		return fmt.Errorf("%w: %v on %v", ErrInvalidOrdering, d.Ordering, d.Op)
	}
	return nil
}

func (d Descriptor) String() string {
	s := d.Op.Name()
	if d.Op.HasWidth() {
		s += d.Width.String()
	}
	if d.Ordering == SeqCst {
		return s + "_seq"
	}
	return s + d.Ordering.Suffix()
}

// Descriptors enumerates every valid descriptor, grouped by operation, width
// and ordering in that order.
func Descriptors() []Descriptor {
	var ds []Descriptor
	for _, op := range AtomicOps {
		widths := Widths
		if !op.HasWidth() {
			widths = []Width{0}
		}
		for _, w := range widths {
			for _, o := range Orderings {
				d := Descriptor{Op: op, Width: w, Ordering: o}
				if d.Validate() == nil {
					ds = append(ds, d)
				}
			}
		}
	}
	return ds
}
