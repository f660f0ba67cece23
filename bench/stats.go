// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bench

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=Outcome

// Outcome is the result class of a benchmark round.
type Outcome int

const (
	// Passed rounds verified
	Passed Outcome = iota
	// Violated rounds failed verification
	Violated
	// Canceled rounds were interrupted
	Canceled
)

// Summary describes the samples of one tag.
type Summary struct {
	Mean  float64
	SD    float64
	Min   float64
	Count int
}

// Stats keeps track of round outcomes and of measurements per tag.
type Stats struct {
	mu      sync.Mutex
	start   time.Time
	counts  map[Outcome]int
	samples map[string][]float64
}

// NewStats returns a new Stats object
func NewStats() *Stats {
	return &Stats{
		start:   time.Now(),
		counts:  make(map[Outcome]int),
		samples: make(map[string][]float64),
	}
}

// Inc increments the count of outcome o.
func (s *Stats) Inc(o Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[o]++
}

// Count returns the count of outcome o.
func (s *Stats) Count(o Outcome) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[o]
}

// Add adds a sample to a tag.
func (s *Stats) Add(tag string, v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples[tag] = append(s.samples[tag], v)
}

// AddTime adds a time duration to a tag.
func (s *Stats) AddTime(tag string, d time.Duration) {
	s.Add(tag, float64(d))
}

// Summary returns mean, standard deviation and minimum of the samples of tag.
func (s *Stats) Summary(tag string) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	x := s.samples[tag]
	if len(x) == 0 {
		return Summary{}
	}
	mean, sd := stat.MeanStdDev(x, nil)
	if len(x) == 1 || math.IsNaN(sd) {
		sd = 0
	}
	return Summary{Mean: mean, SD: sd, Min: floats.Min(x), Count: len(x)}
}

// GetTime returns the mean and standard deviation of a time tag.
func (s *Stats) GetTime(tag string) (time.Duration, time.Duration) {
	sum := s.Summary(tag)
	return time.Duration(sum.Mean), time.Duration(sum.SD)
}

func (s *Stats) tags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var tags []string
	for t := range s.samples {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// String is the string representation of the stats object.
func (s *Stats) String() string {
	var str strings.Builder
	for _, o := range []Outcome{Passed, Violated, Canceled} {
		if c := s.Count(o); c > 0 {
			fmt.Fprintf(&str, "%8v: %d\n", o, c)
		}
	}

	elapsed := time.Since(s.start)
	fmt.Fprintf(&str, "Total time: %v\n", elapsed)

	for _, tag := range s.tags() {
		sum := s.Summary(tag)
		fmt.Fprintf(&str, "Mean %s: %.2f (sd=%.2f min=%.2f cnt=%d)\n", tag, sum.Mean, sum.SD, sum.Min, sum.Count)
	}
	return str.String()
}
