// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package core

//go:generate go run golang.org/x/tools/cmd/stringer -type=Selection

// Selection represents a group of benchmark workloads
type Selection int

const (
	// SelectionInvalid does not select any workload
	SelectionInvalid Selection = iota
	// SelectionAll selects rmws + cmpxchg + accesses + flags + fences
	SelectionAll
	// SelectionRMWs selects exchange and fetch-and-modify workloads
	SelectionRMWs
	// SelectionCmpxchg selects compare-and-exchange workloads
	SelectionCmpxchg
	// SelectionAccess selects plain load and store workloads
	SelectionAccess
	// SelectionFlags selects flag test-and-set/clear workloads
	SelectionFlags
	// SelectionFences selects fence litmus workloads
	SelectionFences
)

// ParseSelection parses the name of a workload group.
func ParseSelection(s string) Selection {
	switch s {
	case "all":
		return SelectionAll
	case "rmw", "rmws":
		return SelectionRMWs
	case "cmpxchg", "cas":
		return SelectionCmpxchg
	case "access", "loads", "stores":
		return SelectionAccess
	case "flag", "flags":
		return SelectionFlags
	case "fence", "fences":
		return SelectionFences
	default:
		return SelectionInvalid
	}
}

// Group extracts sub selections of coarse selections
func (s Selection) Group() []Selection {
	var sel []Selection
	switch s {
	case SelectionAll:
		sel = append(sel, SelectionRMWs, SelectionCmpxchg, SelectionAccess, SelectionFlags, SelectionFences)
	default:
		sel = append(sel, s)
	}
	return sel
}

// Contains returns whether o is s or one of its sub selections.
func (s Selection) Contains(o Selection) bool {
	for _, g := range s.Group() {
		if g == o {
			return true
		}
	}
	return false
}
