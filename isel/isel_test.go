// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package isel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vatomic/core"
)

func ops(s Sequence) []string {
	var r []string
	for _, i := range s.Insts {
		r = append(r, i.Op)
	}
	return r
}

func TestSelectAMD64(t *testing.T) {
	testCases := []struct {
		d      core.Descriptor
		symbol string
		ops    []string
	}{
		{core.Descriptor{Op: core.Load, Width: core.W32, Ordering: core.Relaxed}, "ld32", []string{"MOVL"}},
		{core.Descriptor{Op: core.Load, Width: core.W64, Ordering: core.SeqCst}, "ld64", []string{"MOVQ"}},
		{core.Descriptor{Op: core.Store, Width: core.W8, Ordering: core.Release}, "st8", []string{"MOVB"}},
		{core.Descriptor{Op: core.Store, Width: core.W16, Ordering: core.SeqCst}, "st16Sc", []string{"MOVW", "MFENCE"}},
		{core.Descriptor{Op: core.Xchg, Width: core.W32, Ordering: core.Acquire}, "xchg32", []string{"XCHGL"}},
		{core.Descriptor{Op: core.Add, Width: core.W64, Ordering: core.Relaxed}, "lockXadd64", []string{"LOCK", "XADDQ"}},
		{core.Descriptor{Op: core.Sub, Width: core.W32, Ordering: core.SeqCst}, "lockXadd32", []string{"NEGL", "LOCK", "XADDL"}},
		{core.Descriptor{Op: core.Or, Width: core.W8, Ordering: core.AcqRel}, "lockOr8",
			[]string{"MOVB", "MOVB", "ORB", "LOCK", "CMPXCHGB", "JNE"}},
		{core.Descriptor{Op: core.Cmpxchg, Width: core.W16, Ordering: core.Release}, "lockCmpxchg16",
			[]string{"LOCK", "CMPXCHGW", "SETEQ"}},
		{core.Descriptor{Op: core.FlagTestAndSet, Ordering: core.Acquire}, "lockOr32",
			[]string{"MOVL", "MOVL", "ORL", "LOCK", "CMPXCHGL", "JNE"}},
		{core.Descriptor{Op: core.Fence, Ordering: core.SeqCst}, "mfence", []string{"MFENCE"}},
		{core.Descriptor{Op: core.Fence, Ordering: core.AcqRel}, "compilerBarrier", nil},
	}
	for _, tc := range testCases {
		t.Run(tc.d.String(), func(t *testing.T) {
			s, err := Select(core.AMD64, tc.d)
			require.NoError(t, err)
			assert.Equal(t, tc.symbol, s.Symbol)
			assert.Equal(t, tc.ops, ops(s))
			assert.Equal(t, core.AMD64, s.Arch)
			assert.Equal(t, tc.d, s.Desc)
		})
	}
}

func TestSelectRISCV64(t *testing.T) {
	testCases := []struct {
		d      core.Descriptor
		symbol string
		ops    []string
	}{
		{core.Descriptor{Op: core.Load, Width: core.W8, Ordering: core.Relaxed}, "ld8", []string{"lbu"}},
		{core.Descriptor{Op: core.Load, Width: core.W32, Ordering: core.Acquire}, "ld32Acq", []string{"lwu", "fence"}},
		{core.Descriptor{Op: core.Load, Width: core.W64, Ordering: core.SeqCst}, "ld64Sc", []string{"fence", "ld", "fence"}},
		{core.Descriptor{Op: core.Store, Width: core.W16, Ordering: core.Relaxed}, "st16", []string{"sh"}},
		{core.Descriptor{Op: core.Store, Width: core.W64, Ordering: core.SeqCst}, "st64Rel", []string{"fence", "sd"}},
		{core.Descriptor{Op: core.Add, Width: core.W32, Ordering: core.SeqCst}, "amoadd32AqRl", []string{"amoadd.w.aqrl"}},
		{core.Descriptor{Op: core.Sub, Width: core.W64, Ordering: core.Release}, "amoadd64Rl", []string{"neg", "amoadd.d.rl"}},
		{core.Descriptor{Op: core.Xchg, Width: core.W64, Ordering: core.Acquire}, "amoswap64Aq", []string{"amoswap.d.aq"}},
		{core.Descriptor{Op: core.And, Width: core.W32, Ordering: core.Relaxed}, "amoand32", []string{"amoand.w"}},
		{core.Descriptor{Op: core.Or, Width: core.W64, Ordering: core.AcqRel}, "amoor64AqRl", []string{"amoor.d.aqrl"}},
		{core.Descriptor{Op: core.Xor, Width: core.W32, Ordering: core.Acquire}, "amoxor32Aq", []string{"amoxor.w.aq"}},
		{core.Descriptor{Op: core.Add, Width: core.W8, Ordering: core.Relaxed}, "lrsc32", []string{"lr.w", "bne", "sc.w", "bnez"}},
		{core.Descriptor{Op: core.Cmpxchg, Width: core.W32, Ordering: core.Relaxed}, "lrsc32", []string{"lr.w", "bne", "sc.w", "bnez"}},
		{core.Descriptor{Op: core.Cmpxchg, Width: core.W32, Ordering: core.Acquire}, "lrsc32Aq", []string{"lr.w.aq", "bne", "sc.w", "bnez"}},
		{core.Descriptor{Op: core.Cmpxchg, Width: core.W64, Ordering: core.Release}, "lrsc64Rl", []string{"lr.d", "bne", "sc.d.rl", "bnez"}},
		{core.Descriptor{Op: core.Cmpxchg, Width: core.W64, Ordering: core.AcqRel}, "lrsc64AqRl", []string{"lr.d.aq", "bne", "sc.d.rl", "bnez"}},
		{core.Descriptor{Op: core.Cmpxchg, Width: core.W32, Ordering: core.SeqCst}, "lrsc32Sc", []string{"lr.w.aqrl", "bne", "sc.w.rl", "bnez"}},
		{core.Descriptor{Op: core.Cmpxchg, Width: core.W16, Ordering: core.SeqCst}, "lrsc32Sc", []string{"lr.w.aqrl", "bne", "sc.w.rl", "bnez"}},
		{core.Descriptor{Op: core.FlagTestAndSet, Ordering: core.Acquire}, "amoor32Aq", []string{"amoor.w.aq"}},
		{core.Descriptor{Op: core.FlagClear, Ordering: core.Release}, "amoand32Rl", []string{"amoand.w.rl"}},
		{core.Descriptor{Op: core.Fence, Ordering: core.Relaxed}, "compilerBarrier", nil},
		{core.Descriptor{Op: core.Fence, Ordering: core.Acquire}, "fenceAcq", []string{"fence"}},
		{core.Descriptor{Op: core.Fence, Ordering: core.Release}, "fenceRel", []string{"fence"}},
		{core.Descriptor{Op: core.Fence, Ordering: core.AcqRel}, "fenceRW", []string{"fence"}},
		{core.Descriptor{Op: core.Fence, Ordering: core.SeqCst}, "fenceRW", []string{"fence"}},
	}
	for _, tc := range testCases {
		t.Run(tc.d.String(), func(t *testing.T) {
			s, err := Select(core.RISCV64, tc.d)
			require.NoError(t, err)
			assert.Equal(t, tc.symbol, s.Symbol)
			assert.Equal(t, tc.ops, ops(s))
		})
	}
}

func TestSelectRISCV64Fences(t *testing.T) {
	s := MustSelect(core.RISCV64, core.Descriptor{Op: core.Load, Width: core.W32, Ordering: core.SeqCst})
	require.Len(t, s.Insts, 3)
	assert.Equal(t, "rw,rw", s.Insts[0].Args)
	assert.Equal(t, "r,rw", s.Insts[2].Args)
	assert.Equal(t, uint32(0x0330000f), s.Insts[0].Word)
	assert.True(t, s.Insts[0].Raw())
	assert.False(t, s.Insts[1].Raw())

	s = MustSelect(core.RISCV64, core.Descriptor{Op: core.Store, Width: core.W32, Ordering: core.Release})
	assert.Equal(t, "fence rw,w; sw a1, 0(a0)", s.String())
}

// Narrow lanes read their word once before the lr/sc loop with the acquire
// half of the ordering.
func TestSelectRISCV64NarrowRead(t *testing.T) {
	reads := map[core.Ordering]string{
		core.Relaxed: "ld32",
		core.Release: "ld32",
		core.Acquire: "ld32Acq",
		core.AcqRel:  "ld32Acq",
		core.SeqCst:  "ld32Sc",
	}
	for _, op := range []core.AtomicOp{core.Xchg, core.Add, core.Xor, core.Cmpxchg} {
		for _, w := range []core.Width{core.W8, core.W16} {
			for o, sym := range reads {
				d := core.Descriptor{Op: op, Width: w, Ordering: o}
				s := MustSelect(core.RISCV64, d)
				require.NotNil(t, s.Read, d.String())
				assert.Equal(t, sym, s.Read.Symbol, d.String())
				assert.Equal(t, core.Load, s.Read.Desc.Op)
				assert.Equal(t, core.W32, s.Read.Desc.Width)
			}
		}
	}

	s := MustSelect(core.RISCV64, core.Descriptor{Op: core.Cmpxchg, Width: core.W8, Ordering: core.SeqCst})
	assert.Equal(t, "fence rw,rw; lwu a1, 0(a0); fence r,rw; lr.w.aqrl a3, (a0); bne a3, a1, 1f; sc.w.rl a4, a2, (a0); bnez a4, 0b", s.String())

	// word-wide operations have no separate read
	for _, d := range []core.Descriptor{
		{Op: core.Cmpxchg, Width: core.W32, Ordering: core.SeqCst},
		{Op: core.Add, Width: core.W64, Ordering: core.Acquire},
		{Op: core.FlagTestAndSet, Ordering: core.SeqCst},
	} {
		assert.Nil(t, MustSelect(core.RISCV64, d).Read, d.String())
	}
	for _, s := range mustTable(t, core.AMD64) {
		assert.Nil(t, s.Read, s.Desc.String())
	}
}

func mustTable(t *testing.T, arch core.Arch) []Sequence {
	table, err := Table(arch)
	require.NoError(t, err)
	return table
}

func TestSelectErrors(t *testing.T) {
	_, err := Select(core.AMD64, core.Descriptor{Op: core.Load, Width: core.W32, Ordering: core.Release})
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.ErrorContains(t, err, "load32_rel")

	_, err = Select(core.InvalidArch, core.Descriptor{Op: core.Add, Width: core.W32, Ordering: core.SeqCst})
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = Select(core.RISCV64, core.Descriptor{Op: core.Add, Width: 24, Ordering: core.SeqCst})
	assert.ErrorIs(t, err, ErrUnsupported)

	assert.Panics(t, func() {
		MustSelect(core.RISCV64, core.Descriptor{})
	})
}

func TestTable(t *testing.T) {
	for _, arch := range core.Archs {
		t.Run(arch.String(), func(t *testing.T) {
			table, err := Table(arch)
			require.NoError(t, err)
			descs := core.Descriptors()
			require.Len(t, table, len(descs))
			for i, s := range table {
				assert.Equal(t, descs[i], s.Desc)
				assert.NotEmpty(t, s.Symbol, s.Desc.String())
				if s.Symbol != "compilerBarrier" {
					assert.NotEmpty(t, s.Insts, s.Desc.String())
				}
			}
		})
	}
}

// Every riscv64 instruction carrying ordering bits is emitted as a raw word
// that decodes to the same aq/rl pair the mnemonic shows.
func TestRISCV64WordsMatchMnemonics(t *testing.T) {
	table, err := Table(core.RISCV64)
	require.NoError(t, err)
	for _, s := range table {
		for _, i := range s.Insts {
			if !i.Raw() || i.Op == "fence" {
				continue
			}
			bits := (i.Word >> 25) & 0b11
			switch {
			case hasSuffix(i.Op, ".aqrl"):
				assert.Equal(t, uint32(0b11), bits, i.String())
			case hasSuffix(i.Op, ".aq"):
				assert.Equal(t, uint32(0b10), bits, i.String())
			case hasSuffix(i.Op, ".rl"):
				assert.Equal(t, uint32(0b01), bits, i.String())
			default:
				assert.Equal(t, uint32(0), bits, i.String())
			}
		}
	}
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}
