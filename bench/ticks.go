// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bench

// Ticks returns the value of the CPU counter: the time-stamp counter on
// amd64 and the time CSR on riscv64.
func Ticks() uint64
