// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package core

import "runtime"

// Arch identifies an instruction set architecture with an atomic backend.
type Arch int

const (
	// InvalidArch is any architecture without a backend
	InvalidArch Arch = iota
	// AMD64 is x86-64 with lock-prefixed read-modify-write instructions
	AMD64
	// RISCV64 is RV64 with the A extension (AMOs and LR/SC)
	RISCV64
)

// Archs lists the architectures with a backend.
var Archs = []Arch{AMD64, RISCV64}

// ParseArch parses a GOARCH or a triple-style architecture name.
func ParseArch(s string) Arch {
	switch s {
	case "amd64", "x86_64", "x86-64":
		return AMD64
	case "riscv64", "riscv":
		return RISCV64
	default:
		return InvalidArch
	}
}

// HostArch returns the architecture the program was built for.
func HostArch() Arch {
	return ParseArch(runtime.GOARCH)
}

// GOARCH returns the Go name of the architecture.
func (a Arch) GOARCH() string {
	switch a {
	case AMD64:
		return "amd64"
	case RISCV64:
		return "riscv64"
	default:
		return ""
	}
}

func (a Arch) String() string {
	if s := a.GOARCH(); s != "" {
		return s
	}
	return "invalid"
}
