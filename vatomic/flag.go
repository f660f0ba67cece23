// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package vatomic

import (
	"unsafe"

	"vatomic/core"
)

// Flag is an atomic boolean occupying one byte. Flags may be packed next to
// other data: their operations act on the aligned 32-bit word containing the
// flag and only change its byte.
//
// The zero Flag is clear.
type Flag struct {
	v uint8
}

func (f *Flag) lane() (word *uint32, shift uint) {
	p := unsafe.Pointer(&f.v)
	return (*uint32)(unsafe.Pointer(uintptr(p) &^ 3)), uint(uintptr(p)&3) * 8
}

// TestAndSet sets the flag and reports whether it was already set.
func (f *Flag) TestAndSet() bool {
	return f.TestAndSetExplicit(SeqCst)
}

// TestAndSetExplicit is TestAndSet with ordering o.
func (f *Flag) TestAndSetExplicit(o Ordering) bool {
	word, shift := f.lane()
	old := or32(word, 1<<shift, resolve(core.FlagTestAndSet, o))
	return (old>>shift)&0xff != 0
}

// Clear clears the flag and reports whether it was set.
func (f *Flag) Clear() bool {
	return f.ClearExplicit(SeqCst)
}

// ClearExplicit is Clear with ordering o.
func (f *Flag) ClearExplicit(o Ordering) bool {
	word, shift := f.lane()
	old := and32(word, ^(uint32(0xff) << shift), resolve(core.FlagClear, o))
	return (old>>shift)&0xff != 0
}

// IsSet reports whether the flag is set, without ordering.
func (f *Flag) IsSet() bool {
	return load8(&f.v, Relaxed) != 0
}
