// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package isel

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"vatomic/core"
)

func TestEncodeAMO(t *testing.T) {
	testCases := []struct {
		name string
		word uint32
		exp  uint32
	}{
		{"amoadd.w", EncodeAMO(amoADD, core.W32, core.Relaxed, A2, A0, A1), 0x00b5262f},
		{"amoadd.w.aqrl", EncodeAMO(amoADD, core.W32, core.SeqCst, A2, A0, A1), 0x06b5262f},
		{"amoswap.d", EncodeAMO(amoSWAP, core.W64, core.Relaxed, A2, A0, A1), 0x08b5362f},
		{"amoand.w.aqrl", EncodeAMO(amoAND, core.W32, core.AcqRel, A2, A0, A1), 0x66b5262f},
		{"lr.w.aq", EncodeLR(core.W32, core.Acquire, A3, A0), 0x140526af},
		{"lr.d.aqrl", EncodeLR(core.W64, core.SeqCst, A3, A0), 0x160536af},
		{"sc.w.rl", EncodeSC(core.W32, core.Release, A4, A0, A2), 0x1ac5272f},
		{"fence r,rw", EncodeFence(FenceR, FenceRW), 0x0230000f},
		{"fence rw,w", EncodeFence(FenceRW, FenceW), 0x0310000f},
		{"fence rw,rw", EncodeFence(FenceRW, FenceRW), 0x0330000f},
		{"rdtime a0", EncodeCSRR(A0, CSRTime), 0xc0102573},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, fmt.Sprintf("%#08x", tc.exp), fmt.Sprintf("%#08x", tc.word))
		})
	}
}

func TestEncodeAqRlBits(t *testing.T) {
	base := EncodeAMO(amoOR, core.W64, core.Relaxed, A2, A0, A1)
	assert.Equal(t, base|1<<25, EncodeAMO(amoOR, core.W64, core.Release, A2, A0, A1))
	assert.Equal(t, base|1<<26, EncodeAMO(amoOR, core.W64, core.Acquire, A2, A0, A1))
	assert.Equal(t, base|3<<25, EncodeAMO(amoOR, core.W64, core.AcqRel, A2, A0, A1))
	assert.Equal(t, base|3<<25, EncodeAMO(amoOR, core.W64, core.SeqCst, A2, A0, A1))
}

func TestRegString(t *testing.T) {
	assert.Equal(t, "a0", A0.String())
	assert.Equal(t, "zero", Zero.String())
	assert.Equal(t, "x5", Reg(5).String())
}
