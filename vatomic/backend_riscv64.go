// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package vatomic

import "unsafe"

// Implemented in atomic_riscv64.s. AMO and LR/SC variants are suffixed with
// their aq/rl bits; the Sc LR/SC variant pairs lr.aqrl with sc.rl.

//go:noescape
func ld8(p *uint8) uint8

//go:noescape
func ld8Acq(p *uint8) uint8

//go:noescape
func ld8Sc(p *uint8) uint8

//go:noescape
func st8(p *uint8, v uint8)

//go:noescape
func st8Rel(p *uint8, v uint8)

//go:noescape
func ld16(p *uint16) uint16

//go:noescape
func ld16Acq(p *uint16) uint16

//go:noescape
func ld16Sc(p *uint16) uint16

//go:noescape
func st16(p *uint16, v uint16)

//go:noescape
func st16Rel(p *uint16, v uint16)

//go:noescape
func ld32(p *uint32) uint32

//go:noescape
func ld32Acq(p *uint32) uint32

//go:noescape
func ld32Sc(p *uint32) uint32

//go:noescape
func st32(p *uint32, v uint32)

//go:noescape
func st32Rel(p *uint32, v uint32)

//go:noescape
func ld64(p *uint64) uint64

//go:noescape
func ld64Acq(p *uint64) uint64

//go:noescape
func ld64Sc(p *uint64) uint64

//go:noescape
func st64(p *uint64, v uint64)

//go:noescape
func st64Rel(p *uint64, v uint64)

//go:noescape
func amoswap32(p *uint32, v uint32) uint32

//go:noescape
func amoswap32Aq(p *uint32, v uint32) uint32

//go:noescape
func amoswap32Rl(p *uint32, v uint32) uint32

//go:noescape
func amoswap32AqRl(p *uint32, v uint32) uint32

//go:noescape
func amoswap64(p *uint64, v uint64) uint64

//go:noescape
func amoswap64Aq(p *uint64, v uint64) uint64

//go:noescape
func amoswap64Rl(p *uint64, v uint64) uint64

//go:noescape
func amoswap64AqRl(p *uint64, v uint64) uint64

//go:noescape
func amoadd32(p *uint32, v uint32) uint32

//go:noescape
func amoadd32Aq(p *uint32, v uint32) uint32

//go:noescape
func amoadd32Rl(p *uint32, v uint32) uint32

//go:noescape
func amoadd32AqRl(p *uint32, v uint32) uint32

//go:noescape
func amoadd64(p *uint64, v uint64) uint64

//go:noescape
func amoadd64Aq(p *uint64, v uint64) uint64

//go:noescape
func amoadd64Rl(p *uint64, v uint64) uint64

//go:noescape
func amoadd64AqRl(p *uint64, v uint64) uint64

//go:noescape
func amoand32(p *uint32, v uint32) uint32

//go:noescape
func amoand32Aq(p *uint32, v uint32) uint32

//go:noescape
func amoand32Rl(p *uint32, v uint32) uint32

//go:noescape
func amoand32AqRl(p *uint32, v uint32) uint32

//go:noescape
func amoand64(p *uint64, v uint64) uint64

//go:noescape
func amoand64Aq(p *uint64, v uint64) uint64

//go:noescape
func amoand64Rl(p *uint64, v uint64) uint64

//go:noescape
func amoand64AqRl(p *uint64, v uint64) uint64

//go:noescape
func amoor32(p *uint32, v uint32) uint32

//go:noescape
func amoor32Aq(p *uint32, v uint32) uint32

//go:noescape
func amoor32Rl(p *uint32, v uint32) uint32

//go:noescape
func amoor32AqRl(p *uint32, v uint32) uint32

//go:noescape
func amoor64(p *uint64, v uint64) uint64

//go:noescape
func amoor64Aq(p *uint64, v uint64) uint64

//go:noescape
func amoor64Rl(p *uint64, v uint64) uint64

//go:noescape
func amoor64AqRl(p *uint64, v uint64) uint64

//go:noescape
func amoxor32(p *uint32, v uint32) uint32

//go:noescape
func amoxor32Aq(p *uint32, v uint32) uint32

//go:noescape
func amoxor32Rl(p *uint32, v uint32) uint32

//go:noescape
func amoxor32AqRl(p *uint32, v uint32) uint32

//go:noescape
func amoxor64(p *uint64, v uint64) uint64

//go:noescape
func amoxor64Aq(p *uint64, v uint64) uint64

//go:noescape
func amoxor64Rl(p *uint64, v uint64) uint64

//go:noescape
func amoxor64AqRl(p *uint64, v uint64) uint64

//go:noescape
func lrsc32(p *uint32, old, new uint32) (prev uint32, swapped bool)

//go:noescape
func lrsc32Aq(p *uint32, old, new uint32) (prev uint32, swapped bool)

//go:noescape
func lrsc32Rl(p *uint32, old, new uint32) (prev uint32, swapped bool)

//go:noescape
func lrsc32AqRl(p *uint32, old, new uint32) (prev uint32, swapped bool)

//go:noescape
func lrsc32Sc(p *uint32, old, new uint32) (prev uint32, swapped bool)

//go:noescape
func lrsc64(p *uint64, old, new uint64) (prev uint64, swapped bool)

//go:noescape
func lrsc64Aq(p *uint64, old, new uint64) (prev uint64, swapped bool)

//go:noescape
func lrsc64Rl(p *uint64, old, new uint64) (prev uint64, swapped bool)

//go:noescape
func lrsc64AqRl(p *uint64, old, new uint64) (prev uint64, swapped bool)

//go:noescape
func lrsc64Sc(p *uint64, old, new uint64) (prev uint64, swapped bool)

func fenceAcq()

func fenceRel()

func fenceRW()

func compilerBarrier()

// AMO variants indexed by Ordering.Bits().
var (
	amoswap32Fns = [4]func(*uint32, uint32) uint32{amoswap32, amoswap32Rl, amoswap32Aq, amoswap32AqRl}
	amoswap64Fns = [4]func(*uint64, uint64) uint64{amoswap64, amoswap64Rl, amoswap64Aq, amoswap64AqRl}
	amoadd32Fns  = [4]func(*uint32, uint32) uint32{amoadd32, amoadd32Rl, amoadd32Aq, amoadd32AqRl}
	amoadd64Fns  = [4]func(*uint64, uint64) uint64{amoadd64, amoadd64Rl, amoadd64Aq, amoadd64AqRl}
	amoand32Fns  = [4]func(*uint32, uint32) uint32{amoand32, amoand32Rl, amoand32Aq, amoand32AqRl}
	amoand64Fns  = [4]func(*uint64, uint64) uint64{amoand64, amoand64Rl, amoand64Aq, amoand64AqRl}
	amoor32Fns   = [4]func(*uint32, uint32) uint32{amoor32, amoor32Rl, amoor32Aq, amoor32AqRl}
	amoor64Fns   = [4]func(*uint64, uint64) uint64{amoor64, amoor64Rl, amoor64Aq, amoor64AqRl}
	amoxor32Fns  = [4]func(*uint32, uint32) uint32{amoxor32, amoxor32Rl, amoxor32Aq, amoxor32AqRl}
	amoxor64Fns  = [4]func(*uint64, uint64) uint64{amoxor64, amoxor64Rl, amoxor64Aq, amoxor64AqRl}
)

func load8(p *uint8, o Ordering) uint8 {
	switch o {
	case Relaxed:
		return ld8(p)
	case Acquire:
		return ld8Acq(p)
	default:
		return ld8Sc(p)
	}
}

func store8(p *uint8, v uint8, o Ordering) {
	if o == Relaxed {
		st8(p, v)
		return
	}
	st8Rel(p, v)
}

func load16(p *uint16, o Ordering) uint16 {
	switch o {
	case Relaxed:
		return ld16(p)
	case Acquire:
		return ld16Acq(p)
	default:
		return ld16Sc(p)
	}
}

func store16(p *uint16, v uint16, o Ordering) {
	if o == Relaxed {
		st16(p, v)
		return
	}
	st16Rel(p, v)
}

func load32(p *uint32, o Ordering) uint32 {
	switch o {
	case Relaxed:
		return ld32(p)
	case Acquire:
		return ld32Acq(p)
	default:
		return ld32Sc(p)
	}
}

func store32(p *uint32, v uint32, o Ordering) {
	if o == Relaxed {
		st32(p, v)
		return
	}
	st32Rel(p, v)
}

func load64(p *uint64, o Ordering) uint64 {
	switch o {
	case Relaxed:
		return ld64(p)
	case Acquire:
		return ld64Acq(p)
	default:
		return ld64Sc(p)
	}
}

func store64(p *uint64, v uint64, o Ordering) {
	if o == Relaxed {
		st64(p, v)
		return
	}
	st64Rel(p, v)
}

func swap32(p *uint32, v uint32, o Ordering) uint32 { return amoswap32Fns[o.Bits()](p, v) }
func add32(p *uint32, v uint32, o Ordering) uint32 { return amoadd32Fns[o.Bits()](p, v) }
func and32(p *uint32, v uint32, o Ordering) uint32 { return amoand32Fns[o.Bits()](p, v) }
func or32(p *uint32, v uint32, o Ordering) uint32 { return amoor32Fns[o.Bits()](p, v) }
func xor32(p *uint32, v uint32, o Ordering) uint32 { return amoxor32Fns[o.Bits()](p, v) }

func cas32(p *uint32, old, new uint32, o Ordering) (uint32, bool) {
	switch o {
	case Relaxed:
		return lrsc32(p, old, new)
	case Acquire:
		return lrsc32Aq(p, old, new)
	case Release:
		return lrsc32Rl(p, old, new)
	case AcqRel:
		return lrsc32AqRl(p, old, new)
	default:
		return lrsc32Sc(p, old, new)
	}
}

func swap64(p *uint64, v uint64, o Ordering) uint64 { return amoswap64Fns[o.Bits()](p, v) }
func add64(p *uint64, v uint64, o Ordering) uint64 { return amoadd64Fns[o.Bits()](p, v) }
func and64(p *uint64, v uint64, o Ordering) uint64 { return amoand64Fns[o.Bits()](p, v) }
func or64(p *uint64, v uint64, o Ordering) uint64 { return amoor64Fns[o.Bits()](p, v) }
func xor64(p *uint64, v uint64, o Ordering) uint64 { return amoxor64Fns[o.Bits()](p, v) }

func cas64(p *uint64, old, new uint64, o Ordering) (uint64, bool) {
	switch o {
	case Relaxed:
		return lrsc64(p, old, new)
	case Acquire:
		return lrsc64Aq(p, old, new)
	case Release:
		return lrsc64Rl(p, old, new)
	case AcqRel:
		return lrsc64AqRl(p, old, new)
	default:
		return lrsc64Sc(p, old, new)
	}
}

// There is no byte or half-word AMO in RV64A. Narrow read-modify-writes run
// an lr.w/sc.w loop on the aligned word that contains the location and only
// replace its lane.

func laneOf(p unsafe.Pointer, bits uint) (word *uint32, shift uint, mask uint32) {
	word = (*uint32)(unsafe.Pointer(uintptr(p) &^ 3))
	shift = uint(uintptr(p)&3) * 8
	mask = uint32(1<<bits-1) << shift
	return
}

// first read of the word; it carries the acquire half of o so that a
// compare-exchange failing on it is ordered like lr would be
func loadWord(word *uint32, o Ordering) uint32 {
	return load32(word, o.ReadHalf())
}

func rmwLane(p unsafe.Pointer, bits uint, o Ordering, f func(uint32) uint32) uint32 {
	word, shift, mask := laneOf(p, bits)
	cur := loadWord(word, o)
	for {
		lane := (cur & mask) >> shift
		next := cur&^mask | (f(lane)<<shift)&mask
		prev, ok := cas32(word, cur, next, o)
		if ok {
			return lane
		}
		cur = prev
	}
}

func casLane(p unsafe.Pointer, bits uint, old, new uint32, o Ordering) (uint32, bool) {
	word, shift, mask := laneOf(p, bits)
	cur := loadWord(word, o)
	for {
		lane := (cur & mask) >> shift
		if lane != old {
			return lane, false
		}
		prev, ok := cas32(word, cur, cur&^mask|new<<shift&mask, o)
		if ok {
			return old, true
		}
		// another lane of the word changed
		cur = prev
	}
}

func swap8(p *uint8, v uint8, o Ordering) uint8 {
	return uint8(rmwLane(unsafe.Pointer(p), 8, o, func(uint32) uint32 { return uint32(v) }))
}

func add8(p *uint8, v uint8, o Ordering) uint8 {
	return uint8(rmwLane(unsafe.Pointer(p), 8, o, func(x uint32) uint32 { return x + uint32(v) }))
}

func and8(p *uint8, v uint8, o Ordering) uint8 {
	return uint8(rmwLane(unsafe.Pointer(p), 8, o, func(x uint32) uint32 { return x & uint32(v) }))
}

func or8(p *uint8, v uint8, o Ordering) uint8 {
	return uint8(rmwLane(unsafe.Pointer(p), 8, o, func(x uint32) uint32 { return x | uint32(v) }))
}

func xor8(p *uint8, v uint8, o Ordering) uint8 {
	return uint8(rmwLane(unsafe.Pointer(p), 8, o, func(x uint32) uint32 { return x ^ uint32(v) }))
}

func cas8(p *uint8, old, new uint8, o Ordering) (uint8, bool) {
	prev, ok := casLane(unsafe.Pointer(p), 8, uint32(old), uint32(new), o)
	return uint8(prev), ok
}

func swap16(p *uint16, v uint16, o Ordering) uint16 {
	return uint16(rmwLane(unsafe.Pointer(p), 16, o, func(uint32) uint32 { return uint32(v) }))
}

func add16(p *uint16, v uint16, o Ordering) uint16 {
	return uint16(rmwLane(unsafe.Pointer(p), 16, o, func(x uint32) uint32 { return x + uint32(v) }))
}

func and16(p *uint16, v uint16, o Ordering) uint16 {
	return uint16(rmwLane(unsafe.Pointer(p), 16, o, func(x uint32) uint32 { return x & uint32(v) }))
}

func or16(p *uint16, v uint16, o Ordering) uint16 {
	return uint16(rmwLane(unsafe.Pointer(p), 16, o, func(x uint32) uint32 { return x | uint32(v) }))
}

func xor16(p *uint16, v uint16, o Ordering) uint16 {
	return uint16(rmwLane(unsafe.Pointer(p), 16, o, func(x uint32) uint32 { return x ^ uint32(v) }))
}

func cas16(p *uint16, old, new uint16, o Ordering) (uint16, bool) {
	prev, ok := casLane(unsafe.Pointer(p), 16, uint32(old), uint32(new), o)
	return uint16(prev), ok
}

func fence(o Ordering) {
	switch o {
	case Relaxed:
		compilerBarrier()
	case Acquire:
		fenceAcq()
	case Release:
		fenceRel()
	default:
		fenceRW()
	}
}
