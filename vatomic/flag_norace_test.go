// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !race

package vatomic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The race detector does not see the synchronisation of the lock, so the
// plain counter is only checked without it.
func TestFlagSpinlock(t *testing.T) {
	const (
		n = 4
		k = 20000
	)
	var (
		lock    Flag
		counter int
	)
	parallel(n, func(int) {
		for i := 0; i < k; i++ {
			for lock.TestAndSetExplicit(Acquire) {
			}
			counter++
			lock.ClearExplicit(Release)
		}
	})
	assert.Equal(t, n*k, counter)
}
