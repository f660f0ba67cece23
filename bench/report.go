// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bench

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"vatomic/core"
	"vatomic/logger"
)

var (
	rlxColor = color.New(color.FgRed).SprintFunc()
	relColor = color.New(color.FgGreen).SprintFunc()
	acqColor = color.New(color.FgYellow).SprintFunc()
	seqColor = color.New(color.FgCyan).SprintFunc()
	naColor  = color.New(color.FgBlue).SprintFunc()

	okColor   = color.New(color.FgGreen, color.Bold).SprintFunc()
	failColor = color.New(color.BgRed, color.FgWhite).SprintFunc()
)

// OrderingColor returns the function coloring text of ordering o.
func OrderingColor(o core.Ordering) func(a ...any) string {
	switch o {
	case core.Relaxed:
		return rlxColor
	case core.Release:
		return relColor
	case core.Acquire, core.AcqRel:
		return acqColor
	case core.SeqCst:
		return seqColor
	default:
		return naColor
	}
}

// WithColor returns the name of o in its color.
func WithColor(o core.Ordering) string {
	return OrderingColor(o)(o)
}

// Status returns the colored verification status of r.
func (r Result) Status() string {
	if r.Passed() {
		return okColor("OK")
	}
	return failColor("FAIL")
}

// SummaryLines returns the report of the results as lines.
func SummaryLines(results []Result) []string {
	if len(results) == 0 {
		return nil
	}
	var (
		first = results[0]
		lines = []string{
			fmt.Sprintf("arch=%v workers=%d iterations=%d width=%d",
				first.Arch, first.Workers, first.Iterations, first.Width.Bits()),
			fmt.Sprintf("%-8s %-10s %12s %12s %8s  %s",
				"workload", "ordering", "ns/op", "ticks/op", "status", "observed"),
		}
	)
	for _, r := range results {
		// pad before coloring; escape codes count as width
		ord := fmt.Sprintf("%-10s", r.Ordering)
		ord = strings.Replace(ord, r.Ordering.String(), WithColor(r.Ordering), 1)
		lines = append(lines, fmt.Sprintf("%-8s %s %12.2f %12.2f %8s  %s",
			r.Workload, ord, r.NsPerOp, r.TicksPerOp, r.Status(), r.Observed))
		if r.Err != nil {
			lines = append(lines, fmt.Sprintf("         %v", r.Err))
		}
	}
	return lines
}

// PrintSummary prints the report of the results.
func PrintSummary(results []Result) {
	for _, l := range SummaryLines(results) {
		logger.Println(l)
	}
}
