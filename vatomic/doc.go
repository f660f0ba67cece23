// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package vatomic provides atomic operations on integer cells with an
// explicit memory ordering per call.
//
// Each operation has an implicit form, which is sequentially consistent, and
// an Explicit form taking one of Relaxed, Acquire, Release, AcqRel or SeqCst.
// An ordering that cannot apply to an operation, such as a release load, is
// strengthened to SeqCst. The zero Ordering also means SeqCst.
//
// The instructions executed for every (operation, width, ordering) are the
// sequences of package isel. They are implemented in assembly for amd64 and
// riscv64; building the package for any other architecture fails.
package vatomic
