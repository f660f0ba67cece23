// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jinzhu/copier"
	"github.com/sugawarayuuta/sonnet"

	"vatomic/bench"
	"vatomic/logger"
)

const fileMode = 0600

const (
	dateTime = "2006-01-02 15:04:05"
)

// reportRow is a benchmark result as saved in the CSV log and JSON report.
type reportRow struct {
	Workload   string  `json:"workload"`
	Workers    int     `json:"workers"`
	Iterations int     `json:"iterations"`
	Rounds     int     `json:"rounds"`
	NsPerOp    float64 `json:"ns_per_op"`
	TicksPerOp float64 `json:"ticks_per_op"`
	Observed   string  `json:"observed"`
	Passed     bool    `json:"passed"`

	Arch     string `json:"arch" copier:"-"`
	Ordering string `json:"ordering" copier:"-"`
	Width    int    `json:"width" copier:"-"`
	Duration string `json:"duration" copier:"-"`
	Error    string `json:"error,omitempty" copier:"-"`
	Code     int    `json:"exit_code" copier:"-"`
}

func newReport(results []bench.Result) ([]reportRow, error) {
	var rows []reportRow
	if err := copier.Copy(&rows, results); err != nil {
		return nil, err
	}
	for i, r := range results {
		rows[i].Arch = r.Arch.String()
		rows[i].Ordering = r.Ordering.String()
		rows[i].Width = r.Width.Bits()
		rows[i].Duration = r.Duration.String()
		if r.Err != nil {
			rows[i].Error = getErrorType(r.Err)
		}
		rows[i].Code = resultCode(r)
	}
	return rows, nil
}

func resultCode(r bench.Result) int {
	var verr *bench.VerifyError
	if errors.As(r.Err, &verr) {
		return int(verifyFail)
	}
	return getErrorCode(r.Err)
}

func saveCSV(rows []reportRow, filename string) error {
	if filename == "" {
		return nil
	}
	withHeader := false
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		withHeader = true
	}

	fp, err := os.OpenFile(filename,
		os.O_APPEND|os.O_WRONLY|os.O_CREATE, fileMode)
	if err != nil {
		return fmt.Errorf("could not open file: %v", filename)
	}
	defer func() {
		if err := fp.Close(); err != nil {
			logger.Warnf("error closing file: %v", err)
		}
	}()

	if withHeader {
		fmt.Fprint(fp, "# date, workload, arch, ordering, width, workers, iterations, rounds, duration, ns_per_op, ticks_per_op, observed, error_type, exit_code")
		fmt.Fprintln(fp)
	}

	now := time.Now().Format(dateTime)
	for _, r := range rows {
		errType := r.Error
		if errType == "" {
			errType = noError.String()
		}
		if _, err := fmt.Fprintf(fp, "%s, %s, %s, %s, %d, %d, %d, %d, %s, %.3f, %.3f, %s, %s, %d\n",
			now,
			r.Workload,
			r.Arch,
			r.Ordering,
			r.Width,
			r.Workers,
			r.Iterations,
			r.Rounds,
			r.Duration,
			r.NsPerOp,
			r.TicksPerOp,
			r.Observed,
			errType,
			r.Code); err != nil {
			return err
		}
	}
	return nil
}

func saveJSON(rows []reportRow, filename string) error {
	if filename == "" {
		return nil
	}
	b, err := sonnet.Marshal(rows)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, append(b, '\n'), fileMode)
}
