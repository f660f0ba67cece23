// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bench

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStats(t *testing.T) {
	s := NewStats()
	s.Inc(Passed)
	s.Inc(Passed)
	s.Inc(Violated)
	assert.Equal(t, 2, s.Count(Passed))
	assert.Equal(t, 1, s.Count(Violated))
	assert.Equal(t, 0, s.Count(Canceled))

	s.Add("x", 2)
	s.Add("x", 4)
	s.Add("x", 6)
	sum := s.Summary("x")
	assert.Equal(t, 3, sum.Count)
	assert.InDelta(t, 4.0, sum.Mean, 1e-9)
	assert.InDelta(t, 2.0, sum.SD, 1e-9)
	assert.InDelta(t, 2.0, sum.Min, 1e-9)

	assert.Equal(t, Summary{}, s.Summary("missing"))

	s.AddTime("t", time.Second)
	mean, sd := s.GetTime("t")
	assert.Equal(t, time.Second, mean)
	assert.Zero(t, sd)

	str := s.String()
	assert.Contains(t, str, "Passed: 2")
	assert.Contains(t, str, "Violated: 1")
	assert.NotContains(t, str, "Canceled")
	assert.Contains(t, str, "Mean x: 4.00")
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "Passed", Passed.String())
	assert.Equal(t, "Canceled", Canceled.String())
	assert.Equal(t, "Outcome(7)", Outcome(7).String())
}
