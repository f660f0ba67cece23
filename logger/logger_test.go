// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package logger

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, l Level) *bytes.Buffer {
	var buf bytes.Buffer
	SetWriter(&buf)
	SetLevel(l)
	t.Cleanup(func() {
		SetWriter(nil)
		SetLevel(INFO)
	})
	return &buf
}

func TestLevels(t *testing.T) {
	buf := capture(t, WARN)
	Debug("debug")
	Info("info")
	Warnf("warn %d", 1)
	Error("error")
	assert.Equal(t, "warn 1\nerror\n", buf.String())

	buf.Reset()
	SetLevel(ERROR)
	Warn("warn")
	Errorf("error %s", "x")
	assert.Equal(t, "error x\n", buf.String())

	buf.Reset()
	SetLevel(DEBUG)
	Debugf("%v=%v", "a", 1)
	Infof("b")
	assert.Equal(t, "a=1\nb\n", buf.String())
}

func TestSilenced(t *testing.T) {
	capture(t, DEBUG)
	SetFileDescriptor(nil)
	assert.NotPanics(t, func() {
		Info("nothing")
		Printf("nothing")
	})
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		in  string
		out Level
		err bool
	}{
		{"error", ERROR, false},
		{"WARN", WARN, false},
		{"Info", INFO, false},
		{"debug", DEBUG, false},
		{"fatal", fatal, true},
		{"verbose", fatal, true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			l, err := ParseLevel(tc.in)
			assert.Equal(t, tc.out, l)
			assert.Equal(t, tc.err, err != nil)
		})
	}
	assert.Equal(t, "DEBUG", DEBUG.String())
	assert.Equal(t, "Level(9)", Level(9).String())
}

func TestConcurrentLines(t *testing.T) {
	buf := capture(t, INFO)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				Infof("worker %d line %d", i, j)
			}
		}(i)
	}
	wg.Wait()
	lines := bytes.Split(bytes.TrimSuffix(buf.Bytes(), []byte("\n")), []byte("\n"))
	assert.Len(t, lines, 800)
	for _, l := range lines {
		assert.Regexp(t, `^worker \d line \d+$`, string(l))
	}
}
