// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package vatomic

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vatomic/core"
	"vatomic/isel"
)

// textBodies splits an assembly file into the bodies of its TEXT symbols.
func textBodies(t *testing.T, fn string) map[string]string {
	data, err := os.ReadFile(fn)
	require.NoError(t, err)
	bodies := make(map[string]string)
	var (
		sym  string
		body strings.Builder
	)
	flush := func() {
		if sym != "" {
			bodies[sym] = body.String()
		}
		body.Reset()
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "TEXT ·") {
			flush()
			sym = strings.TrimPrefix(line, "TEXT ·")
			sym = sym[:strings.Index(sym, "(SB)")]
			continue
		}
		body.WriteString(line)
		body.WriteString("\n")
	}
	flush()
	return bodies
}

func hasMnemonic(body, m string) bool {
	for _, line := range strings.Split(body, "\n") {
		if f := strings.Fields(line); len(f) > 0 && f[0] == m {
			return true
		}
	}
	return false
}

// The backends implement exactly the sequences the selector reports.
func TestBackendsMatchSelector(t *testing.T) {
	for _, arch := range core.Archs {
		t.Run(arch.String(), func(t *testing.T) {
			bodies := textBodies(t, fmt.Sprintf("atomic_%s.s", arch.GOARCH()))
			table, err := isel.Table(arch)
			require.NoError(t, err)
			var check func(s isel.Sequence)
			check = func(s isel.Sequence) {
				if s.Read != nil {
					check(*s.Read)
				}
				body, ok := bodies[s.Symbol]
				if !assert.True(t, ok, "%v: missing TEXT ·%s", s.Desc, s.Symbol) {
					return
				}
				for _, i := range s.Insts {
					switch {
					case i.GoAsm == "":
					case i.Raw():
						assert.Contains(t, body, fmt.Sprintf("WORD\t$0x%08x\t// %s", i.Word, i), "%v", s.Desc)
					default:
						assert.True(t, hasMnemonic(body, i.GoAsm), "%v: %s", s.Desc, i)
					}
				}
			}
			for _, s := range table {
				check(s)
			}
		})
	}
}

func TestBackendFenceBodies(t *testing.T) {
	bodies := textBodies(t, "atomic_amd64.s")
	assert.Equal(t, "\tRET\n\n", bodies["compilerBarrier"])
	assert.Contains(t, bodies["st32Sc"], "MFENCE")
	assert.NotContains(t, bodies["st32"], "MFENCE")
	assert.NotContains(t, bodies["ld64"], "MFENCE")

	bodies = textBodies(t, "atomic_riscv64.s")
	assert.Contains(t, bodies["fenceRW"], "fence rw,rw")
	assert.Contains(t, bodies["lrsc64Sc"], "lr.d.aqrl a3, (a0)")
	assert.Contains(t, bodies["lrsc64Sc"], "sc.d.rl a4, a2, (a0)")
}
