// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !amd64 && !riscv64

package vatomic

// The atomic backends exist only for amd64 and riscv64.
var _ = vatomic_supports_only_amd64_and_riscv64
