// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"vatomic/bench"
	"vatomic/core"
	"vatomic/logger"
	"vatomic/tools"
)

var runFlags = struct {
	workers    int
	iterations int
	rounds     int
	ordering   string
	width      string
	selection  string
	pin        bool
	csvFile    string
	jsonFile   string
}{}

// defaultWorkloads run when neither workloads nor a selection are given.
var defaultWorkloads = []string{"add", "cas"}

var runCmd = cobra.Command{
	Use:   "run [flags] [workload...]",
	Short: "Runs benchmark workloads and verifies their final state",
	Long: "Runs benchmark workloads and verifies their final state.\n\n" +
		"Workloads: add, sub, cas, xchg, and, or, xor, store, flag, sb\n" +
		"Selections: all, rmw, cmpxchg, access, flags, fences",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return runBench(ctx, args)
	},

	DisableFlagsInUseLine: true,
}

func init() {
	flags := runCmd.Flags()
	addRunFlags(flags)
	flags.StringVar(&runFlags.csvFile, "csv-log", "", "CSV file to append the results to")
	flags.StringVar(&runFlags.jsonFile, "json", "", "JSON file to write the results to")
	rootCmd.AddCommand(&runCmd)
}

func addRunFlags(flags *pflag.FlagSet) {
	flags.IntVarP(&runFlags.workers, "workers", "w", envInt("ATOMICBENCH_WORKERS"), "number of concurrent workers")
	flags.IntVarP(&runFlags.iterations, "iterations", "n", envInt("ATOMICBENCH_ITERATIONS"), "operations per worker and round")
	flags.IntVar(&runFlags.rounds, "rounds", 1, "number of rounds per workload")
	flags.StringVarP(&runFlags.ordering, "ordering", "m", tools.GetEnv("ATOMICBENCH_ORDERING"), "memory ordering (rlx|acq|rel|acq_rel|seq_cst)")
	flags.StringVar(&runFlags.width, "width", "32", "width of the shared cell in bits (8|16|32|64)")
	flags.StringVar(&runFlags.selection, "select", "", "run the workloads of a selection")
	flags.BoolVar(&runFlags.pin, "pin", false, "pin worker i to CPU i")
}

func envInt(name string) int {
	v, err := tools.GetEnvInt(name)
	if err != nil {
		logger.Warnf("%v", err)
	}
	return v
}

func runConfig() (bench.Config, error) {
	width, err := core.ParseWidth(runFlags.width)
	if err != nil {
		return bench.Config{}, configError("%v", err)
	}
	ord := core.ParseOrdering(runFlags.ordering)
	if ord == core.Invalid {
		return bench.Config{}, configError("unknown ordering %q", runFlags.ordering)
	}
	cfg := bench.Config{
		Workers:    runFlags.workers,
		Iterations: runFlags.iterations,
		Rounds:     runFlags.rounds,
		Ordering:   ord,
		Width:      width,
		Pin:        runFlags.pin,
	}
	if err := cfg.Validate(); err != nil {
		return bench.Config{}, configError("%w", err)
	}
	return cfg, nil
}

func runWorkloads(c *bench.Cells, w core.Width, args []string) ([]bench.Workload, error) {
	if runFlags.selection != "" {
		if len(args) != 0 {
			return nil, configError("workloads and --select are exclusive")
		}
		sel := core.ParseSelection(runFlags.selection)
		if sel == core.SelectionInvalid {
			return nil, configError("unknown selection %q", runFlags.selection)
		}
		return bench.Select(c, w, sel), nil
	}
	if len(args) == 0 {
		args = defaultWorkloads
	}
	var wls []bench.Workload
	for _, a := range args {
		wl, err := bench.Lookup(c, w, a)
		if err != nil {
			return nil, configError("%w", err)
		}
		wls = append(wls, wl)
	}
	return wls, nil
}

func runBench(ctx context.Context, args []string) (err error) {
	cfg, err := runConfig()
	if err != nil {
		return err
	}
	wls, err := runWorkloads(bench.Shared(), cfg.Width, args)
	if err != nil {
		return err
	}
	d, err := bench.NewDriver(cfg, nil)
	if err != nil {
		return verror(internalError, err)
	}

	var (
		results []bench.Result
		failed  error
	)
	for _, wl := range wls {
		logger.Infof("Running %s with %d workers", wl.Name(), cfg.Workers)
		res, rerr := d.Run(ctx, wl)
		results = append(results, res)
		var verr *bench.VerifyError
		switch {
		case rerr == nil:
		case errors.As(rerr, &verr):
			failed = rerr
		default:
			err = verror(internalError, rerr)
		}
		if err != nil {
			break
		}
	}

	bench.PrintSummary(results)
	logger.Infof("%v", d.Stats())

	rows, rerr := newReport(results)
	if rerr != nil {
		return verror(internalError, rerr)
	}
	if rerr := saveCSV(rows, runFlags.csvFile); rerr != nil {
		return verror(internalError, rerr)
	}
	if rerr := saveJSON(rows, runFlags.jsonFile); rerr != nil {
		return verror(internalError, rerr)
	}

	if err == nil && failed != nil {
		err = vfail(failed)
	}
	return err
}
