// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bench

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// pin binds the calling thread to CPU worker modulo the number of CPUs.
// The goroutine must be locked to its thread.
func pin(worker int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(worker % runtime.NumCPU())
	return unix.SchedSetaffinity(0, &set)
}
