// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	"github.com/spf13/cobra"
	"golang.org/x/sys/cpu"

	"vatomic/core"
	"vatomic/isel"
	"vatomic/logger"
)

func init() {
	var infoCmd = cobra.Command{
		Use:   "info",
		Short: "Prints information about the host and the atomic backend",
		Args:  cobra.NoArgs,

		DisableFlagsInUseLine: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return Info()
		},
	}

	rootCmd.AddCommand(&infoCmd)
}

// Info prints the host summary.
func Info() error {
	lines, err := hostInfo()
	if err != nil {
		return verror(internalError, err)
	}
	for _, l := range lines {
		logger.Println(l)
	}
	return nil
}

func hostInfo() ([]string, error) {
	arch := core.HostArch()
	lines := []string{
		fmt.Sprintf("arch:       %v", arch),
		fmt.Sprintf("os:         %s", runtime.GOOS),
		fmt.Sprintf("cpus:       %d", runtime.NumCPU()),
		fmt.Sprintf("cache line: %d bytes", unsafe.Sizeof(cpu.CacheLinePad{})),
	}
	if arch == core.AMD64 {
		lines = append(lines, "features:   "+strings.Join(x86Features(), " "))
	}
	if arch == core.InvalidArch {
		return append(lines, "backend:    none"), nil
	}
	t, err := isel.Table(arch)
	if err != nil {
		return nil, err
	}
	lines = append(lines, fmt.Sprintf("backend:    %d sequences", len(t)))
	return lines, nil
}

func x86Features() []string {
	var (
		fs   []string
		list = []struct {
			name string
			has  bool
		}{
			{"sse2", cpu.X86.HasSSE2},
			{"sse42", cpu.X86.HasSSE42},
			{"popcnt", cpu.X86.HasPOPCNT},
			{"avx", cpu.X86.HasAVX},
			{"avx2", cpu.X86.HasAVX2},
			{"bmi2", cpu.X86.HasBMI2},
			{"erms", cpu.X86.HasERMS},
			{"adx", cpu.X86.HasADX},
		}
	)
	for _, f := range list {
		if f.has {
			fs = append(fs, f.name)
		}
	}
	return fs
}
