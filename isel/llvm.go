// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package isel

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"vatomic/core"
)

func toAtomicOrdering(o core.Ordering) enum.AtomicOrdering {
	switch o {
	case core.Relaxed:
		return enum.AtomicOrderingMonotonic
	case core.Release:
		return enum.AtomicOrderingRelease
	case core.Acquire:
		return enum.AtomicOrderingAcquire
	case core.AcqRel:
		return enum.AtomicOrderingAcquireRelease
	case core.SeqCst:
		return enum.AtomicOrderingSequentiallyConsistent
	default:
		return enum.AtomicOrderingNone
	}
}

// failure ordering of a cmpxchg may not carry a release component
func failureOrdering(o core.Ordering) enum.AtomicOrdering {
	switch o {
	case core.Release:
		return enum.AtomicOrderingMonotonic
	case core.AcqRel:
		return enum.AtomicOrderingAcquire
	default:
		return toAtomicOrdering(o)
	}
}

var rmwOps = map[core.AtomicOp]enum.AtomicOp{
	core.Xchg: enum.AtomicOpXChg,
	core.Add:  enum.AtomicOpAdd,
	core.Sub:  enum.AtomicOpSub,
	core.And:  enum.AtomicOpAnd,
	core.Or:   enum.AtomicOpOr,
	core.Xor:  enum.AtomicOpXor,
}

// FuncName returns the name of the IR function rendering d, eg,
// vatomic32_add_rlx or vatomic_fence_acq.
func FuncName(d core.Descriptor) string {
	if d.Op.HasWidth() {
		return fmt.Sprintf("vatomic%d_%s%s", d.Width, d.Op.Name(), d.Ordering.Suffix())
	}
	return fmt.Sprintf("vatomic_%s%s", d.Op.Name(), d.Ordering.Suffix())
}

// LLVM renders each descriptor as an LLVM IR function performing exactly that
// atomic operation.
func LLVM(descs []core.Descriptor) (*ir.Module, error) {
	m := ir.NewModule()
	for _, d := range descs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		addFunc(m, d)
	}
	return m, nil
}

func addFunc(m *ir.Module, d core.Descriptor) {
	var (
		o  = toAtomicOrdering(d.Ordering)
		it = types.NewInt(uint64(d.Width))
	)
	if !d.Op.HasWidth() {
		it = types.I8
	}
	var (
		pt = types.NewPointer(it)
		a  = ir.NewParam("a", pt)
		v  = ir.NewParam("v", it)
	)

	switch d.Op {
	case core.Load:
		f := m.NewFunc(FuncName(d), it, a)
		b := f.NewBlock("entry")
		ld := b.NewLoad(it, a)
		ld.Atomic = true
		ld.Ordering = o
		ld.Align = ir.Align(d.Width.Bytes())
		b.NewRet(ld)

	case core.Store:
		f := m.NewFunc(FuncName(d), types.Void, a, v)
		b := f.NewBlock("entry")
		st := b.NewStore(v, a)
		st.Atomic = true
		st.Ordering = o
		st.Align = ir.Align(d.Width.Bytes())
		b.NewRet(nil)

	case core.Xchg, core.Add, core.Sub, core.And, core.Or, core.Xor:
		f := m.NewFunc(FuncName(d), it, a, v)
		b := f.NewBlock("entry")
		b.NewRet(b.NewAtomicRMW(rmwOps[d.Op], a, v, o))

	case core.Cmpxchg:
		e := ir.NewParam("e", it)
		f := m.NewFunc(FuncName(d), it, a, e, v)
		b := f.NewBlock("entry")
		x := b.NewCmpXchg(a, e, v, o, failureOrdering(d.Ordering))
		b.NewRet(b.NewExtractValue(x, 0))

	case core.FlagTestAndSet, core.FlagClear:
		var set int64
		if d.Op == core.FlagTestAndSet {
			set = 1
		}
		f := m.NewFunc(FuncName(d), types.I8, a)
		b := f.NewBlock("entry")
		b.NewRet(b.NewAtomicRMW(enum.AtomicOpXChg, a, constant.NewInt(types.I8, set), o))

	case core.Fence:
		f := m.NewFunc(FuncName(d), types.Void)
		b := f.NewBlock("entry")
		// a relaxed fence is not valid IR; it only constrains the compiler
		if d.Ordering != core.Relaxed {
			b.NewFence(o)
		}
		b.NewRet(nil)
	}
}
