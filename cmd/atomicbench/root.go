// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main is the atomicbench program of this project.
package main

import (
	"os"
	"regexp"

	"github.com/spf13/cobra"

	"vatomic/logger"
	"vatomic/tools"
)

var rootCmd = cobra.Command{
	Use:           "atomicbench",
	Short:         "",
	Long:          "",
	SilenceUsage:  true,
	SilenceErrors: true,

	TraverseChildren: true,
	Run: func(cmd *cobra.Command, args []string) {
		logger.Println("run 'atomicbench -h' for help")
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logger.ParseLevel(rootFlags.log)
		if err != nil {
			level = logger.ERROR
		}
		logger.SetLevel(level)
		if rootFlags.debug {
			logger.SetLevel(logger.DEBUG)
		}
		if rootFlags.quiet {
			logger.SetFileDescriptor(nil)
		}
	},
}

func init() {
	tools.RegEnv("ATOMICBENCH_WORKERS", "2", "Default number of benchmark workers")
	tools.RegEnv("ATOMICBENCH_ITERATIONS", "1000000", "Default number of iterations per worker")
	tools.RegEnv("ATOMICBENCH_ORDERING", "seq_cst", "Default memory ordering (rlx|acq|rel|acq_rel|seq_cst)")

	helpMessage :=
		`atomicbench -- Atomic operations with explicit memory ordering on amd64 and riscv64`

	helpMessage += "\n\nEnvironment Variables:"
	for _, ev := range tools.GetEnvvars() {
		helpMessage += "\n  " + ev.Name + " " +
			"(default: \"" + ev.Defv + "\")\n\t" + ev.Desc
	}
	rootCmd.Long = helpMessage

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootFlags.log, "log", "ERROR", "log level (ERROR|WARN|INFO|DEBUG)")
	flags.StringVarP(&rootFlags.outputFn, "output", "o", "", "output file")
	flags.BoolVarP(&rootFlags.debug, "debug", "d", false, "set debug mode")
	flags.BoolVarP(&rootFlags.quiet, "quiet", "q", false, "do not produce output")

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}

var reExitStatus = regexp.MustCompile("^exit status [0-9]+$")

var rootFlags struct {
	log      string
	debug    bool
	outputFn string
	quiet    bool
}

type errCode struct {
	err  error
	code int
}

func handlePanic() {
	e := recover()
	if e == nil {
		return
	}
	exit, ok := e.(errCode)
	if !ok {
		panic(e)
	}
	if exit.err != nil {
		logger.Printf("panic: %v\n", exit.err)
	}
	os.Exit(exit.code)
}

func main() {
	if !rootFlags.debug {
		defer handlePanic()
	}
	if err := rootCmd.Execute(); err != nil {
		var (
			code = getErrorCode(err)
			msg  = getErrorMessage(err)
		)

		if match := reExitStatus.MatchString(msg); !match && msg != "" {
			logger.Println(msg)
		}
		os.Exit(code)
	}
}
