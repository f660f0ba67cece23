// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"vatomic/bench"
	"vatomic/core"
	"vatomic/isel"
	"vatomic/logger"
	"vatomic/tools"
)

var iselFlags = struct {
	arch  string
	op    string
	width int
	llvm  bool
}{}

var iselCmd = cobra.Command{
	Use:   "isel [flags]",
	Short: "Prints the instruction sequences of the atomic operations",
	Long: "Prints the instruction sequence selected for every operation, width and\n" +
		"ordering on an architecture, or the LLVM IR of the operations with --llvm.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return iselRun()
	},

	DisableFlagsInUseLine: true,
}

func init() {
	flags := iselCmd.Flags()
	flags.StringVar(&iselFlags.arch, "arch", core.HostArch().GOARCH(), "target architecture (amd64|riscv64)")
	flags.StringVar(&iselFlags.op, "op", "", "only print this operation (load|store|xchg|add|sub|and|or|xor|cmpxchg|tas|clear|fence)")
	flags.IntVar(&iselFlags.width, "width", 0, "only print this width in bits")
	flags.BoolVar(&iselFlags.llvm, "llvm", false, "print the LLVM IR of the operations")
	rootCmd.AddCommand(&iselCmd)
}

// selectDescriptors returns the descriptors matching op and width. An
// invalid op or a zero width matches all.
func selectDescriptors(op core.AtomicOp, width core.Width) []core.Descriptor {
	var ds []core.Descriptor
	for _, d := range core.Descriptors() {
		if op != core.InvalidOp && d.Op != op {
			continue
		}
		if width != 0 && d.Op.HasWidth() && d.Width != width {
			continue
		}
		ds = append(ds, d)
	}
	return ds
}

func iselFilter() (core.AtomicOp, core.Width, error) {
	var (
		op    = core.InvalidOp
		width core.Width
	)
	if iselFlags.op != "" {
		if op = core.ParseAtomicOp(iselFlags.op); op == core.InvalidOp {
			return op, 0, configError("unknown operation %q", iselFlags.op)
		}
	}
	if iselFlags.width != 0 {
		w, err := core.ParseWidth(strconv.Itoa(iselFlags.width))
		if err != nil {
			return op, 0, configError("%v", err)
		}
		width = w
	}
	return op, width, nil
}

// formatSequence returns the listing line of s.
func formatSequence(s isel.Sequence) []string {
	desc := bench.OrderingColor(s.Desc.Ordering)(fmt.Sprintf("%-18s", s.Desc))
	sym := s.Symbol
	if s.Loop {
		sym += " (loop)"
	}
	lines := []string{fmt.Sprintf("%s %-24s %s", desc, sym, s)}
	if s.Note != "" {
		lines = append(lines, fmt.Sprintf("%18s ; %s", "", s.Note))
	}
	return lines
}

func iselRun() error {
	op, width, err := iselFilter()
	if err != nil {
		return err
	}
	ds := selectDescriptors(op, width)

	if iselFlags.llvm {
		m, err := isel.LLVM(ds)
		if err != nil {
			return verror(internalError, err)
		}
		if fn := rootFlags.outputFn; fn != "" {
			if err := tools.Dump(m, fn); err != nil {
				return verror(internalError, err)
			}
			return nil
		}
		logger.Println(m)
		return nil
	}

	arch := core.ParseArch(iselFlags.arch)
	if arch == core.InvalidArch {
		return configError("unknown architecture %q", iselFlags.arch)
	}
	logger.Printf("%v: %d sequences\n", arch, len(ds))
	for _, d := range ds {
		s, err := isel.Select(arch, d)
		if err != nil {
			return verror(internalError, err)
		}
		for _, l := range formatSequence(s) {
			logger.Println(l)
		}
	}
	return nil
}
