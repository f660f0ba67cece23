// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package vatomic

// Implemented in atomic_amd64.s.

//go:noescape
func ld8(p *uint8) uint8

//go:noescape
func st8(p *uint8, v uint8)

//go:noescape
func st8Sc(p *uint8, v uint8)

//go:noescape
func xchg8(p *uint8, v uint8) uint8

//go:noescape
func lockXadd8(p *uint8, v uint8) uint8

//go:noescape
func lockAnd8(p *uint8, v uint8) uint8

//go:noescape
func lockOr8(p *uint8, v uint8) uint8

//go:noescape
func lockXor8(p *uint8, v uint8) uint8

//go:noescape
func lockCmpxchg8(p *uint8, old, new uint8) (prev uint8, swapped bool)

//go:noescape
func ld16(p *uint16) uint16

//go:noescape
func st16(p *uint16, v uint16)

//go:noescape
func st16Sc(p *uint16, v uint16)

//go:noescape
func xchg16(p *uint16, v uint16) uint16

//go:noescape
func lockXadd16(p *uint16, v uint16) uint16

//go:noescape
func lockAnd16(p *uint16, v uint16) uint16

//go:noescape
func lockOr16(p *uint16, v uint16) uint16

//go:noescape
func lockXor16(p *uint16, v uint16) uint16

//go:noescape
func lockCmpxchg16(p *uint16, old, new uint16) (prev uint16, swapped bool)

//go:noescape
func ld32(p *uint32) uint32

//go:noescape
func st32(p *uint32, v uint32)

//go:noescape
func st32Sc(p *uint32, v uint32)

//go:noescape
func xchg32(p *uint32, v uint32) uint32

//go:noescape
func lockXadd32(p *uint32, v uint32) uint32

//go:noescape
func lockAnd32(p *uint32, v uint32) uint32

//go:noescape
func lockOr32(p *uint32, v uint32) uint32

//go:noescape
func lockXor32(p *uint32, v uint32) uint32

//go:noescape
func lockCmpxchg32(p *uint32, old, new uint32) (prev uint32, swapped bool)

//go:noescape
func ld64(p *uint64) uint64

//go:noescape
func st64(p *uint64, v uint64)

//go:noescape
func st64Sc(p *uint64, v uint64)

//go:noescape
func xchg64(p *uint64, v uint64) uint64

//go:noescape
func lockXadd64(p *uint64, v uint64) uint64

//go:noescape
func lockAnd64(p *uint64, v uint64) uint64

//go:noescape
func lockOr64(p *uint64, v uint64) uint64

//go:noescape
func lockXor64(p *uint64, v uint64) uint64

//go:noescape
func lockCmpxchg64(p *uint64, old, new uint64) (prev uint64, swapped bool)

func mfence()

func compilerBarrier()

// Loads and stores are acquire and release on x86-64 and locked
// instructions are full barriers; only seq-cst stores and fences differ.

func load8(p *uint8, _ Ordering) uint8 { return ld8(p) }

func store8(p *uint8, v uint8, o Ordering) {
	if o == SeqCst {
		st8Sc(p, v)
		return
	}
	st8(p, v)
}

func swap8(p *uint8, v uint8, _ Ordering) uint8 { return xchg8(p, v) }
func add8(p *uint8, v uint8, _ Ordering) uint8 { return lockXadd8(p, v) }
func and8(p *uint8, v uint8, _ Ordering) uint8 { return lockAnd8(p, v) }
func or8(p *uint8, v uint8, _ Ordering) uint8 { return lockOr8(p, v) }
func xor8(p *uint8, v uint8, _ Ordering) uint8 { return lockXor8(p, v) }

func cas8(p *uint8, old, new uint8, _ Ordering) (uint8, bool) {
	return lockCmpxchg8(p, old, new)
}

func load16(p *uint16, _ Ordering) uint16 { return ld16(p) }

func store16(p *uint16, v uint16, o Ordering) {
	if o == SeqCst {
		st16Sc(p, v)
		return
	}
	st16(p, v)
}

func swap16(p *uint16, v uint16, _ Ordering) uint16 { return xchg16(p, v) }
func add16(p *uint16, v uint16, _ Ordering) uint16 { return lockXadd16(p, v) }
func and16(p *uint16, v uint16, _ Ordering) uint16 { return lockAnd16(p, v) }
func or16(p *uint16, v uint16, _ Ordering) uint16 { return lockOr16(p, v) }
func xor16(p *uint16, v uint16, _ Ordering) uint16 { return lockXor16(p, v) }

func cas16(p *uint16, old, new uint16, _ Ordering) (uint16, bool) {
	return lockCmpxchg16(p, old, new)
}

func load32(p *uint32, _ Ordering) uint32 { return ld32(p) }

func store32(p *uint32, v uint32, o Ordering) {
	if o == SeqCst {
		st32Sc(p, v)
		return
	}
	st32(p, v)
}

func swap32(p *uint32, v uint32, _ Ordering) uint32 { return xchg32(p, v) }
func add32(p *uint32, v uint32, _ Ordering) uint32 { return lockXadd32(p, v) }
func and32(p *uint32, v uint32, _ Ordering) uint32 { return lockAnd32(p, v) }
func or32(p *uint32, v uint32, _ Ordering) uint32 { return lockOr32(p, v) }
func xor32(p *uint32, v uint32, _ Ordering) uint32 { return lockXor32(p, v) }

func cas32(p *uint32, old, new uint32, _ Ordering) (uint32, bool) {
	return lockCmpxchg32(p, old, new)
}

func load64(p *uint64, _ Ordering) uint64 { return ld64(p) }

func store64(p *uint64, v uint64, o Ordering) {
	if o == SeqCst {
		st64Sc(p, v)
		return
	}
	st64(p, v)
}

func swap64(p *uint64, v uint64, _ Ordering) uint64 { return xchg64(p, v) }
func add64(p *uint64, v uint64, _ Ordering) uint64 { return lockXadd64(p, v) }
func and64(p *uint64, v uint64, _ Ordering) uint64 { return lockAnd64(p, v) }
func or64(p *uint64, v uint64, _ Ordering) uint64 { return lockOr64(p, v) }
func xor64(p *uint64, v uint64, _ Ordering) uint64 { return lockXor64(p, v) }

func cas64(p *uint64, old, new uint64, _ Ordering) (uint64, bool) {
	return lockCmpxchg64(p, old, new)
}

func fence(o Ordering) {
	if o == SeqCst {
		mfence()
		return
	}
	compilerBarrier()
}
