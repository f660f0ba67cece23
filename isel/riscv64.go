// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package isel

import (
	"fmt"

	"vatomic/core"
)

// Reg is a RISC-V integer register number.
type Reg uint32

// Registers used by the riscv64 backend: the cell address is in a0, the
// operand in a1, the result in a2 and a3/a4 are scratch.
const (
	Zero Reg = 0
	A0   Reg = 10
	A1   Reg = 11
	A2   Reg = 12
	A3   Reg = 13
	A4   Reg = 14
)

var regNames = map[Reg]string{Zero: "zero", A0: "a0", A1: "a1", A2: "a2", A3: "a3", A4: "a4"}

func (r Reg) String() string {
	if n, ok := regNames[r]; ok {
		return n
	}
	return fmt.Sprintf("x%d", uint32(r))
}

const (
	opAMO    = 0x2f
	opFence  = 0x0f
	opSystem = 0x73
)

// funct5 values of the A extension.
const (
	amoADD  = 0x00
	amoSWAP = 0x01
	amoLR   = 0x02
	amoSC   = 0x03
	amoXOR  = 0x04
	amoOR   = 0x08
	amoAND  = 0x0c
)

var amoNames = map[uint32]string{
	amoADD:  "amoadd",
	amoSWAP: "amoswap",
	amoLR:   "lr",
	amoSC:   "sc",
	amoXOR:  "amoxor",
	amoOR:   "amoor",
	amoAND:  "amoand",
}

// Fence predecessor/successor sets.
const (
	FenceW  = 0b0001
	FenceR  = 0b0010
	FenceRW = FenceR | FenceW
)

// CSRTime is the user-level real-time counter.
const CSRTime = 0xc01

func funct3(w core.Width) uint32 {
	if w == core.W64 {
		return 0b011
	}
	return 0b010
}

// EncodeAMO encodes an A-extension instruction. The aq and rl bits are taken
// from o.Bits().
func EncodeAMO(funct5 uint32, w core.Width, o core.Ordering, rd, rs1, rs2 Reg) uint32 {
	return funct5<<27 | uint32(o.Bits())<<25 | uint32(rs2)<<20 | uint32(rs1)<<15 |
		funct3(w)<<12 | uint32(rd)<<7 | opAMO
}

// EncodeLR encodes a load-reserved of w bits from (rs1) into rd.
func EncodeLR(w core.Width, o core.Ordering, rd, rs1 Reg) uint32 {
	return EncodeAMO(amoLR, w, o, rd, rs1, Zero)
}

// EncodeSC encodes a store-conditional of rs2 to (rs1); rd receives 0 on success.
func EncodeSC(w core.Width, o core.Ordering, rd, rs1, rs2 Reg) uint32 {
	return EncodeAMO(amoSC, w, o, rd, rs1, rs2)
}

// EncodeFence encodes fence pred,succ.
func EncodeFence(pred, succ uint32) uint32 {
	return pred<<24 | succ<<20 | opFence
}

// EncodeCSRR encodes csrrs rd, csr, zero.
func EncodeCSRR(rd Reg, csr uint32) uint32 {
	return csr<<20 | 0b010<<12 | uint32(rd)<<7 | opSystem
}

func aqrlSuffix(o core.Ordering) string {
	switch o.Bits() {
	case 0b01:
		return ".rl"
	case 0b10:
		return ".aq"
	case 0b11:
		return ".aqrl"
	default:
		return ""
	}
}

func sizeSuffix(w core.Width) string {
	if w == core.W64 {
		return ".d"
	}
	return ".w"
}

func amo(funct5 uint32, w core.Width, o core.Ordering) Inst {
	return Inst{
		Op:    amoNames[funct5] + sizeSuffix(w) + aqrlSuffix(o),
		Args:  fmt.Sprintf("%v, %v, (%v)", A2, A1, A0),
		GoAsm: "WORD",
		Word:  EncodeAMO(funct5, w, o, A2, A0, A1),
	}
}

func lr(w core.Width, o core.Ordering) Inst {
	return Inst{
		Op:    "lr" + sizeSuffix(w) + aqrlSuffix(o),
		Args:  fmt.Sprintf("%v, (%v)", A3, A0),
		GoAsm: "WORD",
		Word:  EncodeLR(w, o, A3, A0),
	}
}

func sc(w core.Width, o core.Ordering) Inst {
	return Inst{
		Op:    "sc" + sizeSuffix(w) + aqrlSuffix(o),
		Args:  fmt.Sprintf("%v, %v, (%v)", A4, A2, A0),
		GoAsm: "WORD",
		Word:  EncodeSC(w, o, A4, A0, A2),
	}
}

var fenceSets = map[uint32]string{FenceR: "r", FenceW: "w", FenceRW: "rw"}

func fence(pred, succ uint32) Inst {
	return Inst{
		Op:    "fence",
		Args:  fenceSets[pred] + "," + fenceSets[succ],
		GoAsm: "WORD",
		Word:  EncodeFence(pred, succ),
	}
}

var (
	rvLoads  = map[core.Width][2]string{core.W8: {"lbu", "MOVBU"}, core.W16: {"lhu", "MOVHU"}, core.W32: {"lwu", "MOVWU"}, core.W64: {"ld", "MOV"}}
	rvStores = map[core.Width][2]string{core.W8: {"sb", "MOVB"}, core.W16: {"sh", "MOVH"}, core.W32: {"sw", "MOVW"}, core.W64: {"sd", "MOV"}}
)

func access(m [2]string) Inst {
	return Inst{Op: m[0], Args: fmt.Sprintf("%v, 0(%v)", A1, A0), GoAsm: m[1]}
}

// casLoop returns the lr/sc loop comparing against a1 and storing a2.
func casLoop(w core.Width, o core.Ordering) []Inst {
	var lo, so core.Ordering = core.Relaxed, core.Relaxed
	switch o {
	case core.Acquire:
		lo = core.Acquire
	case core.Release:
		so = core.Release
	case core.AcqRel:
		lo, so = core.Acquire, core.Release
	case core.SeqCst:
		lo, so = core.SeqCst, core.Release
	}
	return []Inst{
		lr(w, lo),
		{Op: "bne", Args: fmt.Sprintf("%v, %v, 1f", A3, A1), GoAsm: "BNE"},
		sc(w, so),
		{Op: "bnez", Args: fmt.Sprintf("%v, 0b", A4), GoAsm: "BNE"},
	}
}

// amoVariant names the AMO symbol variant for the aq/rl bits of o.
func amoVariant(o core.Ordering) string {
	switch o.Bits() {
	case 0b01:
		return "Rl"
	case 0b10:
		return "Aq"
	case 0b11:
		return "AqRl"
	default:
		return ""
	}
}

func casVariant(o core.Ordering) string {
	if o == core.SeqCst {
		return "Sc"
	}
	return amoVariant(o)
}

var rvAMOs = map[core.AtomicOp]uint32{
	core.Xchg: amoSWAP,
	core.Add:  amoADD,
	core.Sub:  amoADD,
	core.And:  amoAND,
	core.Or:   amoOR,
	core.Xor:  amoXOR,
}

const (
	noteNarrow = "lane of the containing aligned word; the caller reads the word once, merges the lane and retries until sc.w succeeds"
	noteNeg    = "operand negated by the caller"
	noteFlag   = "word-wide AMO with a byte-lane mask"
)

// narrowRead returns the first read of the word containing a narrow lane. It
// carries the acquire half of o, so a compare-exchange failing on it is
// ordered like lr.
func narrowRead(o core.Ordering) *Sequence {
	d := core.Descriptor{Op: core.Load, Width: core.W32, Ordering: o.ReadHalf()}
	s, _ := selectRISCV64(d)
	s.Arch = core.RISCV64
	s.Desc = d
	return &s
}

func selectRISCV64(d core.Descriptor) (Sequence, bool) {
	var (
		w = d.Width
		o = d.Ordering
		s Sequence
	)
	switch d.Op {
	case core.Load:
		s.Insts = []Inst{access(rvLoads[w])}
		switch o {
		case core.Relaxed:
			s.Symbol = fmt.Sprintf("ld%d", w)
		case core.Acquire:
			s.Symbol = fmt.Sprintf("ld%dAcq", w)
			s.Insts = append(s.Insts, fence(FenceR, FenceRW))
		case core.SeqCst:
			s.Symbol = fmt.Sprintf("ld%dSc", w)
			s.Insts = []Inst{fence(FenceRW, FenceRW), access(rvLoads[w]), fence(FenceR, FenceRW)}
		default:
			return s, false
		}

	case core.Store:
		switch o {
		case core.Relaxed:
			s.Symbol = fmt.Sprintf("st%d", w)
			s.Insts = []Inst{access(rvStores[w])}
		case core.Release, core.SeqCst:
			s.Symbol = fmt.Sprintf("st%dRel", w)
			s.Insts = []Inst{fence(FenceRW, FenceW), access(rvStores[w])}
		default:
			return s, false
		}

	case core.Xchg, core.Add, core.Sub, core.And, core.Or, core.Xor:
		if w == core.W8 || w == core.W16 {
			s.Symbol = "lrsc32" + casVariant(o)
			s.Insts = casLoop(core.W32, o)
			s.Loop = true
			s.Read = narrowRead(o)
			s.Note = noteNarrow
			break
		}
		f := rvAMOs[d.Op]
		s.Symbol = fmt.Sprintf("%s%d%s", amoNames[f], w, amoVariant(o))
		s.Insts = []Inst{amo(f, w, o)}
		if d.Op == core.Sub {
			s.Insts = append([]Inst{{Op: "neg", Args: "a1, a1"}}, s.Insts...)
			s.Note = noteNeg
		}

	case core.Cmpxchg:
		s.Loop = true
		if w == core.W8 || w == core.W16 {
			s.Symbol = "lrsc32" + casVariant(o)
			s.Insts = casLoop(core.W32, o)
			s.Read = narrowRead(o)
			s.Note = noteNarrow
			break
		}
		s.Symbol = fmt.Sprintf("lrsc%d%s", w, casVariant(o))
		s.Insts = casLoop(w, o)

	case core.FlagTestAndSet:
		s.Symbol = "amoor32" + amoVariant(o)
		s.Insts = []Inst{amo(amoOR, core.W32, o)}
		s.Note = noteFlag

	case core.FlagClear:
		s.Symbol = "amoand32" + amoVariant(o)
		s.Insts = []Inst{amo(amoAND, core.W32, o)}
		s.Note = noteFlag

	case core.Fence:
		switch o {
		case core.Relaxed:
			s.Symbol = "compilerBarrier"
		case core.Acquire:
			s.Symbol = "fenceAcq"
			s.Insts = []Inst{fence(FenceR, FenceRW)}
		case core.Release:
			s.Symbol = "fenceRel"
			s.Insts = []Inst{fence(FenceRW, FenceW)}
		default:
			s.Symbol = "fenceRW"
			s.Insts = []Inst{fence(FenceRW, FenceRW)}
		}

	default:
		return s, false
	}
	return s, true
}
