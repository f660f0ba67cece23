// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package isel

import (
	"fmt"

	"vatomic/core"
)

// operand size suffixes of the Go amd64 assembler
var x86Suffix = map[core.Width]string{
	core.W8:  "B",
	core.W16: "W",
	core.W32: "L",
	core.W64: "Q",
}

var x86Logic = map[core.AtomicOp][2]string{
	core.And: {"AND", "lockAnd"},
	core.Or:  {"OR", "lockOr"},
	core.Xor: {"XOR", "lockXor"},
}

func x86(op string, w core.Width, args string) Inst {
	m := op + x86Suffix[w]
	return Inst{Op: m, Args: args, GoAsm: m}
}

var (
	lock   = Inst{Op: "LOCK", GoAsm: "LOCK"}
	mfence = Inst{Op: "MFENCE", GoAsm: "MFENCE"}
)

// cmpxchgLoop is the LOCK CMPXCHG retry loop used for fetch-and/or/xor,
// which have no value-returning x86 instruction.
func cmpxchgLoop(logic string, w core.Width) []Inst {
	return []Inst{
		x86("MOV", w, "0(BX), AX"),
		x86("MOV", w, "CX, DX"),
		x86(logic, w, "AX, DX"),
		lock,
		x86("CMPXCHG", w, "DX, 0(BX)"),
		{Op: "JNE", Args: "loop", GoAsm: "JNE"},
	}
}

// On x86 every locked instruction is a full barrier and plain loads and
// stores are already acquire and release, so only seq-cst stores and
// seq-cst fences need an explicit MFENCE.
func selectAMD64(d core.Descriptor) (Sequence, bool) {
	var (
		w = d.Width
		s Sequence
	)
	switch d.Op {
	case core.Load:
		s.Symbol = fmt.Sprintf("ld%d", w)
		s.Insts = []Inst{x86("MOV", w, "0(BX), AX")}

	case core.Store:
		s.Symbol = fmt.Sprintf("st%d", w)
		s.Insts = []Inst{x86("MOV", w, "AX, 0(BX)")}
		if d.Ordering == core.SeqCst {
			s.Symbol += "Sc"
			s.Insts = append(s.Insts, mfence)
		}

	case core.Xchg:
		s.Symbol = fmt.Sprintf("xchg%d", w)
		s.Insts = []Inst{x86("XCHG", w, "AX, 0(BX)")}

	case core.Add, core.Sub:
		s.Symbol = fmt.Sprintf("lockXadd%d", w)
		s.Insts = []Inst{lock, x86("XADD", w, "AX, 0(BX)")}
		if d.Op == core.Sub {
			s.Insts = append([]Inst{x86("NEG", w, "AX")}, s.Insts...)
			s.Insts[0].GoAsm = ""
			s.Note = noteNeg
		}

	case core.And, core.Or, core.Xor:
		l := x86Logic[d.Op]
		s.Symbol = fmt.Sprintf("%s%d", l[1], w)
		s.Insts = cmpxchgLoop(l[0], w)
		s.Loop = true

	case core.Cmpxchg:
		s.Symbol = fmt.Sprintf("lockCmpxchg%d", w)
		s.Insts = []Inst{
			lock,
			x86("CMPXCHG", w, "CX, 0(BX)"),
			{Op: "SETEQ", Args: "swapped", GoAsm: "SETEQ"},
		}

	case core.FlagTestAndSet:
		s.Symbol = "lockOr32"
		s.Insts = cmpxchgLoop("OR", core.W32)
		s.Loop = true
		s.Note = "word-wide fetch-or with a byte-lane mask"

	case core.FlagClear:
		s.Symbol = "lockAnd32"
		s.Insts = cmpxchgLoop("AND", core.W32)
		s.Loop = true
		s.Note = "word-wide fetch-and with a byte-lane mask"

	case core.Fence:
		if d.Ordering == core.SeqCst {
			s.Symbol = "mfence"
			s.Insts = []Inst{mfence}
		} else {
			s.Symbol = "compilerBarrier"
		}

	default:
		return s, false
	}
	return s, true
}
