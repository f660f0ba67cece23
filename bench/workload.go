// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bench

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"

	"vatomic/core"
)

// Workload is a concurrent use of atomic operations whose final state can be
// verified.
type Workload interface {
	// Name returns the catalog name of the workload.
	Name() string
	// Selection returns the group the workload belongs to.
	Selection() core.Selection
	// Reset prepares the cells for a round of cfg. It runs before the
	// workers start.
	Reset(cfg Config)
	// Work runs the iterations of one worker.
	Work(worker, iterations int)
	// Verify checks the final state after all workers joined.
	Verify(cfg Config) error
	// Observed describes the final state.
	Observed() string
}

// Names lists the workloads of the catalog.
var Names = []string{"add", "sub", "cas", "xchg", "and", "or", "xor", "store", "flag", "sb"}

// Workloads returns the catalog with the cell of width w.
func Workloads(c *Cells, w core.Width) []Workload {
	switch w {
	case core.W8:
		return catalog(c, &c.U8)
	case core.W16:
		return catalog(c, &c.U16)
	case core.W32:
		return catalog(c, &c.U32)
	default:
		return catalog(c, &c.U64)
	}
}

func catalog[T constraints.Unsigned](c *Cells, cell *T) []Workload {
	return []Workload{
		&addWorkload[T]{cell: cell},
		&subWorkload[T]{cell: cell},
		&casWorkload[T]{cell: cell},
		&xchgWorkload[T]{cell: cell},
		&logicWorkload[T]{cell: cell, op: core.And},
		&logicWorkload[T]{cell: cell, op: core.Or},
		&logicWorkload[T]{cell: cell, op: core.Xor},
		&storeWorkload[T]{cell: cell},
		&flagWorkload{c: c},
		&sbWorkload{c: c},
	}
}

// Lookup returns the workload called name with the cell of width w.
func Lookup(c *Cells, w core.Width, name string) (Workload, error) {
	for _, wl := range Workloads(c, w) {
		if wl.Name() == name {
			return wl, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown workload %q (%s)", ErrConfig, name, strings.Join(Names, "|"))
}

// Select returns the workloads of the selection sel.
func Select(c *Cells, w core.Width, sel core.Selection) []Workload {
	var r []Workload
	for _, wl := range Workloads(c, w) {
		if sel.Contains(wl.Selection()) {
			r = append(r, wl)
		}
	}
	return r
}
