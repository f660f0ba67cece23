// Copyright (C) 2024 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"vatomic/core"
	"vatomic/logger"
	"vatomic/tools"
)

const crossDoc = `
Cross-builds atomicbench for --arch and runs it in a linux/<arch> Docker
container (ATOMICBENCH_DOCKER_PLATFORM overrides the platform). The arguments
after -- are passed to 'atomicbench run'. Pass no arguments to start an
interactive shell next to the binary; stdin must then be a terminal.
`

var crossFlags = struct {
	volumes []string
	pull    bool
	arch    string
	pkg     string
}{}

var crossCmd = cobra.Command{
	Use:   "cross [flags] -- [run args]",
	Short: "Runs the benchmark of another architecture in a Docker container",
	Long:  crossDoc,
	RunE:  crossRun,

	DisableFlagsInUseLine: true,
}

func init() {
	flags := crossCmd.Flags()
	flags.StringSliceVarP(&crossFlags.volumes, "volume", "v", []string{}, "mount volumes")
	flags.BoolVar(&crossFlags.pull, "pull", false, "Pull Docker image before running")
	flags.StringVar(&crossFlags.arch, "arch", "riscv64", "target architecture")
	flags.StringVar(&crossFlags.pkg, "pkg", "./cmd/atomicbench", "package of the benchmark")
	rootCmd.AddCommand(&crossCmd)
}

// crossArgs returns the container command running bin with the run args.
func crossArgs(bin string, args []string) []string {
	if len(args) == 0 {
		return nil
	}
	return append([]string{"./" + filepath.Base(bin), "run"}, args...)
}

// crossContainer returns the container of the --arch target.
func crossContainer() (tools.Container, error) {
	arch := core.ParseArch(crossFlags.arch)
	if arch == core.InvalidArch {
		return tools.Container{}, configError("unknown architecture %q", crossFlags.arch)
	}
	c, err := tools.NewContainer(arch, crossFlags.volumes)
	if err != nil {
		return tools.Container{}, configError("%v", err)
	}
	return c, nil
}

func crossRun(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	c, err := crossContainer()
	if err != nil {
		return err
	}
	arch := c.Arch
	if crossFlags.pull {
		if err := c.Pull(ctx); err != nil {
			return verror(internalError, err)
		}
	}

	bin, err := tools.Touch("atomicbench-" + arch.GOARCH() + "-*")
	if err != nil {
		return verror(internalError, err)
	}
	defer func() {
		if err := tools.Remove(bin); err != nil {
			logger.Warnf("could not remove %s: %v", bin, err)
		}
	}()

	if err := tools.CrossBuild(ctx, arch, crossFlags.pkg, bin); err != nil {
		return verror(internalError, err)
	}
	if err := c.Run(ctx, crossArgs(bin, args)); err != nil {
		return verror(internalError, err)
	}
	return nil
}
