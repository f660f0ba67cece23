// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package isel maps atomic operation descriptors to the instruction sequences
// that implement them on each supported architecture.
//
// The mapping is pure: it does not depend on the host and it is the reference
// the assembly backends of package vatomic are written against. Every sequence
// names the backend TEXT symbol that executes it.
package isel

import (
	"errors"
	"fmt"
	"strings"

	"vatomic/core"
)

// ErrUnsupported is returned when no instruction sequence exists for a descriptor.
var ErrUnsupported = errors.New("no instruction sequence")

// Inst is one machine instruction of a sequence.
type Inst struct {
	// Op and Args are the native assembler spelling.
	Op   string
	Args string
	// GoAsm is the Go assembler mnemonic the backend uses for this
	// instruction; WORD means the instruction is emitted as raw Word.
	// Empty means the step is performed by the Go caller.
	GoAsm string
	Word  uint32
}

func (i Inst) String() string {
	if i.Args == "" {
		return i.Op
	}
	return i.Op + " " + i.Args
}

// Raw returns whether the instruction is emitted as an encoded word.
func (i Inst) Raw() bool {
	return i.GoAsm == "WORD"
}

// Sequence is the instruction sequence selected for a descriptor.
type Sequence struct {
	Arch   core.Arch
	Desc   core.Descriptor
	Symbol string
	Insts  []Inst
	// Loop marks sequences retried until a conditional store succeeds.
	Loop bool
	// Read is the load that runs once before a loop to fetch its first
	// expected value, if any.
	Read *Sequence
	Note string
}

func (s Sequence) String() string {
	var parts []string
	if s.Read != nil {
		for _, i := range s.Read.Insts {
			parts = append(parts, i.String())
		}
	}
	for _, i := range s.Insts {
		parts = append(parts, i.String())
	}
	if len(parts) == 0 {
		return "(compiler barrier)"
	}
	return strings.Join(parts, "; ")
}

// Select returns the instruction sequence implementing d on arch.
func Select(arch core.Arch, d core.Descriptor) (Sequence, error) {
	if err := d.Validate(); err != nil {
		return Sequence{}, fmt.Errorf("%w for %v: %v", ErrUnsupported, d, err)
	}
	var (
		s  Sequence
		ok bool
	)
	switch arch {
	case core.AMD64:
		s, ok = selectAMD64(d)
	case core.RISCV64:
		s, ok = selectRISCV64(d)
	default:
		return Sequence{}, fmt.Errorf("%w for %v: architecture %v", ErrUnsupported, d, arch)
	}
	if !ok {
		return Sequence{}, fmt.Errorf("%w for %v on %v", ErrUnsupported, d, arch)
	}
	s.Arch = arch
	s.Desc = d
	return s, nil
}

// MustSelect works as Select but panics if no sequence exists.
func MustSelect(arch core.Arch, d core.Descriptor) Sequence {
	s, err := Select(arch, d)
	if err != nil {
		panic(err)
	}
	return s
}

// Table returns the sequences of every valid descriptor on arch.
func Table(arch core.Arch) ([]Sequence, error) {
	var t []Sequence
	for _, d := range core.Descriptors() {
		s, err := Select(arch, d)
		if err != nil {
			return nil, err
		}
		t = append(t, s)
	}
	return t, nil
}
