// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package core

//go:generate go run golang.org/x/tools/cmd/stringer -type=AtomicOp

// AtomicOp represents types of atomic operations
type AtomicOp int

const (
	// InvalidOp represents a InvalidOp operation
	InvalidOp AtomicOp = iota
	// Load represents a Load operation
	Load
	// Store represents a Store operation
	Store
	// Xchg represents an exchange operation
	Xchg
	// Add represents a fetch-and-add operation
	Add
	// Sub represents a fetch-and-sub operation
	Sub
	// And represents a fetch-and-and operation
	And
	// Or represents a fetch-and-or operation
	Or
	// Xor represents a fetch-and-xor operation
	Xor
	// Cmpxchg represents a Cmpxchg operation
	Cmpxchg
	// FlagTestAndSet represents a test-and-set on a flag byte
	FlagTestAndSet
	// FlagClear represents a clear on a flag byte
	FlagClear
	// Fence represents a Fence operation
	Fence
)

// AtomicOps lists every valid operation.
var AtomicOps = []AtomicOp{Load, Store, Xchg, Add, Sub, And, Or, Xor, Cmpxchg, FlagTestAndSet, FlagClear, Fence}

var opNames = map[string]AtomicOp{
	"load":    Load,
	"store":   Store,
	"xchg":    Xchg,
	"add":     Add,
	"sub":     Sub,
	"and":     And,
	"or":      Or,
	"xor":     Xor,
	"cmpxchg": Cmpxchg,
	"tas":     FlagTestAndSet,
	"clear":   FlagClear,
	"fence":   Fence,
}

// ParseAtomicOp parses the short name of an operation, eg, "add" or "cmpxchg".
func ParseAtomicOp(s string) AtomicOp {
	return opNames[s]
}

// Name returns the short name accepted by ParseAtomicOp.
func (op AtomicOp) Name() string {
	for n, o := range opNames {
		if o == op {
			return n
		}
	}
	return ""
}

// Reads returns whether the operation returns the value of the location.
func (op AtomicOp) Reads() bool {
	return op != InvalidOp && op != Store && op != Fence
}

// Writes returns whether the operation may write the location.
func (op AtomicOp) Writes() bool {
	return op != InvalidOp && op != Load && op != Fence
}

// IsRMW returns whether the operation is a read-modify-write.
func (op AtomicOp) IsRMW() bool {
	return op.Reads() && op.Writes()
}

// HasWidth returns whether the operation accesses a sized location.
// Flags are always one byte and fences access nothing.
func (op AtomicOp) HasWidth() bool {
	switch op {
	case InvalidOp, FlagTestAndSet, FlagClear, Fence:
		return false
	default:
		return true
	}
}

// GetOrdering returns the ordering of an atomic operation given a bit pair.
func (op AtomicOp) GetOrdering(val int) Ordering {
	if m, ok := orderMap[op]; ok {
		return m[val]
	}
	if op == InvalidOp {
		return Invalid
	}
	if val == 0b11 {
		return SeqCst
	}
	return map4[val]
}

// Legal returns whether ordering o may be requested for the operation.
// Acquire-class orderings need a read, release-class orderings need a write.
func (op AtomicOp) Legal(o Ordering) bool {
	switch {
	case op == InvalidOp, o == Invalid:
		return false
	case op == Fence, o == SeqCst:
		return true
	case o.HasAcquire() && !op.Reads():
		return false
	case o.HasRelease() && !op.Writes():
		return false
	}
	return true
}
