// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package vatomic

import "vatomic/core"

// Ordering is the memory ordering of an operation.
type Ordering = core.Ordering

// Memory orderings, from weakest to strongest.
const (
	Relaxed = core.Relaxed
	Acquire = core.Acquire
	Release = core.Release
	AcqRel  = core.AcqRel
	SeqCst  = core.SeqCst
)

// resolve returns the ordering executed for op when o is requested.
func resolve(op core.AtomicOp, o Ordering) Ordering {
	if o < core.SeqCst || o > core.AcqRel || !op.Legal(o) {
		return SeqCst
	}
	return o
}

// resolveCAS combines the success and failure orderings of a
// compare-exchange. A zero failure ordering follows success.
func resolveCAS(success, failure Ordering) Ordering {
	s := resolve(core.Cmpxchg, success)
	if failure == core.Invalid {
		return s
	}
	return s.Join(resolve(core.Cmpxchg, failure))
}
