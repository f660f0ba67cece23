// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package vatomic

import (
	"unsafe"

	"golang.org/x/exp/constraints"

	"vatomic/core"
)

// Width returns the width of cells of type T.
func Width[T constraints.Integer]() core.Width {
	var v T
	return core.Width(unsafe.Sizeof(v) * 8)
}

func p8[T constraints.Integer](p *T) *uint8   { return (*uint8)(unsafe.Pointer(p)) }
func p16[T constraints.Integer](p *T) *uint16 { return (*uint16)(unsafe.Pointer(p)) }
func p32[T constraints.Integer](p *T) *uint32 { return (*uint32)(unsafe.Pointer(p)) }
func p64[T constraints.Integer](p *T) *uint64 { return (*uint64)(unsafe.Pointer(p)) }

// Load atomically reads *p.
func Load[T constraints.Integer](p *T) T {
	return LoadExplicit(p, SeqCst)
}

// LoadExplicit atomically reads *p with ordering o.
func LoadExplicit[T constraints.Integer](p *T, o Ordering) T {
	o = resolve(core.Load, o)
	switch unsafe.Sizeof(*p) {
	case 1:
		return T(load8(p8(p), o))
	case 2:
		return T(load16(p16(p), o))
	case 4:
		return T(load32(p32(p), o))
	default:
		return T(load64(p64(p), o))
	}
}

// Store atomically writes v to *p.
func Store[T constraints.Integer](p *T, v T) {
	StoreExplicit(p, v, SeqCst)
}

// StoreExplicit atomically writes v to *p with ordering o.
func StoreExplicit[T constraints.Integer](p *T, v T, o Ordering) {
	o = resolve(core.Store, o)
	switch unsafe.Sizeof(*p) {
	case 1:
		store8(p8(p), uint8(v), o)
	case 2:
		store16(p16(p), uint16(v), o)
	case 4:
		store32(p32(p), uint32(v), o)
	default:
		store64(p64(p), uint64(v), o)
	}
}

// Exchange atomically writes v to *p and returns the previous value.
func Exchange[T constraints.Integer](p *T, v T) T {
	return ExchangeExplicit(p, v, SeqCst)
}

// ExchangeExplicit is Exchange with ordering o.
func ExchangeExplicit[T constraints.Integer](p *T, v T, o Ordering) T {
	o = resolve(core.Xchg, o)
	switch unsafe.Sizeof(*p) {
	case 1:
		return T(swap8(p8(p), uint8(v), o))
	case 2:
		return T(swap16(p16(p), uint16(v), o))
	case 4:
		return T(swap32(p32(p), uint32(v), o))
	default:
		return T(swap64(p64(p), uint64(v), o))
	}
}

// FetchAdd atomically adds v to *p and returns the previous value.
func FetchAdd[T constraints.Integer](p *T, v T) T {
	return FetchAddExplicit(p, v, SeqCst)
}

// FetchAddExplicit is FetchAdd with ordering o.
func FetchAddExplicit[T constraints.Integer](p *T, v T, o Ordering) T {
	return fetchAdd(p, v, resolve(core.Add, o))
}

func fetchAdd[T constraints.Integer](p *T, v T, o Ordering) T {
	switch unsafe.Sizeof(*p) {
	case 1:
		return T(add8(p8(p), uint8(v), o))
	case 2:
		return T(add16(p16(p), uint16(v), o))
	case 4:
		return T(add32(p32(p), uint32(v), o))
	default:
		return T(add64(p64(p), uint64(v), o))
	}
}

// FetchSub atomically subtracts v from *p and returns the previous value.
func FetchSub[T constraints.Integer](p *T, v T) T {
	return FetchSubExplicit(p, v, SeqCst)
}

// FetchSubExplicit is FetchSub with ordering o. The subtraction is an add of
// the two's complement of v.
func FetchSubExplicit[T constraints.Integer](p *T, v T, o Ordering) T {
	return fetchAdd(p, -v, resolve(core.Sub, o))
}

// FetchAnd atomically replaces *p with *p & v and returns the previous value.
func FetchAnd[T constraints.Integer](p *T, v T) T {
	return FetchAndExplicit(p, v, SeqCst)
}

// FetchAndExplicit is FetchAnd with ordering o.
func FetchAndExplicit[T constraints.Integer](p *T, v T, o Ordering) T {
	o = resolve(core.And, o)
	switch unsafe.Sizeof(*p) {
	case 1:
		return T(and8(p8(p), uint8(v), o))
	case 2:
		return T(and16(p16(p), uint16(v), o))
	case 4:
		return T(and32(p32(p), uint32(v), o))
	default:
		return T(and64(p64(p), uint64(v), o))
	}
}

// FetchOr atomically replaces *p with *p | v and returns the previous value.
func FetchOr[T constraints.Integer](p *T, v T) T {
	return FetchOrExplicit(p, v, SeqCst)
}

// FetchOrExplicit is FetchOr with ordering o.
func FetchOrExplicit[T constraints.Integer](p *T, v T, o Ordering) T {
	o = resolve(core.Or, o)
	switch unsafe.Sizeof(*p) {
	case 1:
		return T(or8(p8(p), uint8(v), o))
	case 2:
		return T(or16(p16(p), uint16(v), o))
	case 4:
		return T(or32(p32(p), uint32(v), o))
	default:
		return T(or64(p64(p), uint64(v), o))
	}
}

// FetchXor atomically replaces *p with *p ^ v and returns the previous value.
func FetchXor[T constraints.Integer](p *T, v T) T {
	return FetchXorExplicit(p, v, SeqCst)
}

// FetchXorExplicit is FetchXor with ordering o.
func FetchXorExplicit[T constraints.Integer](p *T, v T, o Ordering) T {
	o = resolve(core.Xor, o)
	switch unsafe.Sizeof(*p) {
	case 1:
		return T(xor8(p8(p), uint8(v), o))
	case 2:
		return T(xor16(p16(p), uint16(v), o))
	case 4:
		return T(xor32(p32(p), uint32(v), o))
	default:
		return T(xor64(p64(p), uint64(v), o))
	}
}

// CompareExchange atomically replaces *p with desired if it equals *expected.
// Otherwise it stores the current value of *p in *expected. It reports
// whether the exchange happened.
func CompareExchange[T constraints.Integer](p, expected *T, desired T) bool {
	return CompareExchangeExplicit(p, expected, desired, SeqCst, SeqCst)
}

// CompareExchangeExplicit is CompareExchange with ordering success when the
// exchange happens and failure when it does not. Both are honoured by
// executing the weakest ordering that includes them.
func CompareExchangeExplicit[T constraints.Integer](p, expected *T, desired T, success, failure Ordering) bool {
	o := resolveCAS(success, failure)
	var (
		prev T
		ok   bool
	)
	switch unsafe.Sizeof(*p) {
	case 1:
		var v uint8
		v, ok = cas8(p8(p), uint8(*expected), uint8(desired), o)
		prev = T(v)
	case 2:
		var v uint16
		v, ok = cas16(p16(p), uint16(*expected), uint16(desired), o)
		prev = T(v)
	case 4:
		var v uint32
		v, ok = cas32(p32(p), uint32(*expected), uint32(desired), o)
		prev = T(v)
	default:
		var v uint64
		v, ok = cas64(p64(p), uint64(*expected), uint64(desired), o)
		prev = T(v)
	}
	if !ok {
		*expected = prev
	}
	return ok
}

// CompareExchangeWeak is CompareExchange. It never fails spuriously.
func CompareExchangeWeak[T constraints.Integer](p, expected *T, desired T) bool {
	return CompareExchangeExplicit(p, expected, desired, SeqCst, SeqCst)
}

// CompareExchangeWeakExplicit is CompareExchangeExplicit. It never fails
// spuriously.
func CompareExchangeWeakExplicit[T constraints.Integer](p, expected *T, desired T, success, failure Ordering) bool {
	return CompareExchangeExplicit(p, expected, desired, success, failure)
}

// ThreadFence orders memory accesses of the calling goroutine's thread
// around it according to o.
func ThreadFence(o Ordering) {
	fence(resolve(core.Fence, o))
}

// SignalFence only prevents the compiler from moving memory accesses across
// it. No instruction is emitted.
func SignalFence(_ Ordering) {
	compilerBarrier()
}
