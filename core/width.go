// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"strconv"
)

// Width is the size in bits of an atomic location.
type Width int

const (
	// W8 is a byte location
	W8 Width = 8
	// W16 is a half-word location
	W16 Width = 16
	// W32 is a word location
	W32 Width = 32
	// W64 is a double-word location
	W64 Width = 64
)

// Widths lists the supported widths.
var Widths = []Width{W8, W16, W32, W64}

// ParseWidth parses a width given in bits, eg, "32".
func ParseWidth(s string) (Width, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWidth, s)
	}
	w := Width(v)
	if !w.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidWidth, v)
	}
	return w, nil
}

// Valid returns whether w is one of the supported widths.
func (w Width) Valid() bool {
	switch w {
	case W8, W16, W32, W64:
		return true
	default:
		return false
	}
}

// Bits returns the width in bits.
func (w Width) Bits() int {
	return int(w)
}

// Bytes returns the width in bytes.
func (w Width) Bytes() int {
	return int(w) / u8
}

// Mask returns a value with the w lower bits set.
func (w Width) Mask() uint64 {
	if w == W64 {
		return ^uint64(0)
	}
	return 1<<uint(w) - 1
}

func (w Width) String() string {
	return strconv.Itoa(int(w))
}

const u8 = 8
