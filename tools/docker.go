// Copyright (C) 2024 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package tools

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"vatomic/core"
	"vatomic/logger"
)

const (
	dockerCmd      = "docker"
	dockerHostname = "atomicbench"
	dockerShell    = "echo \"export PS1='\\h:\\w % '\" > /tmp/bashrc && env PS1='' bash --rcfile /tmp/bashrc"
)

// ErrInsideDocker is returned when a container is started from within a
// container.
var ErrInsideDocker = errors.New("already running inside docker")

// ErrNotTerminal is returned when an interactive shell is requested without
// a terminal on stdin.
var ErrNotTerminal = errors.New("interactive shell needs a terminal")

func init() {
	RegEnv("ATOMICBENCH_DOCKER_IMAGE", "ubuntu", "Docker image the cross-built benchmark runs in")
	RegEnv("ATOMICBENCH_DOCKER_TAG", "22.04", "Docker image tag")
	RegEnv("ATOMICBENCH_DOCKER_PLATFORM", "", "Docker platform of the container (default: linux/<arch>)")
	RegEnv("ATOMICBENCH_DOCKER_VOLUMES", "", "Comma-separated list of additional volumes to mount")
}

// DockerImage returns the image reference of the container.
func DockerImage() string {
	return fmt.Sprintf("%s:%s", GetEnv("ATOMICBENCH_DOCKER_IMAGE"), GetEnv("ATOMICBENCH_DOCKER_TAG"))
}

// DockerPlatform returns the docker platform running binaries of arch.
// ATOMICBENCH_DOCKER_PLATFORM takes precedence when set.
func DockerPlatform(arch core.Arch) string {
	if p := GetEnv("ATOMICBENCH_DOCKER_PLATFORM"); p != "" {
		return p
	}
	return "linux/" + arch.GOARCH()
}

// Container is a docker container running cross-built binaries of Arch.
type Container struct {
	Arch     core.Arch
	Platform string
	Image    string
	Volumes  []string
}

// NewContainer returns the container for arch with the extra volumes and
// those listed in ATOMICBENCH_DOCKER_VOLUMES mounted.
func NewContainer(arch core.Arch, volumes []string) (Container, error) {
	if arch == core.InvalidArch {
		return Container{}, fmt.Errorf("no container platform for %v architecture", arch)
	}
	vols := append([]string{}, volumes...)
	if v := GetEnv("ATOMICBENCH_DOCKER_VOLUMES"); v != "" {
		vols = append(vols, strings.Split(v, ",")...)
	}
	return Container{
		Arch:     arch,
		Platform: DockerPlatform(arch),
		Image:    DockerImage(),
		Volumes:  vols,
	}, nil
}

// Pull fetches the image of the container platform.
func (c Container) Pull(ctx context.Context) error {
	out, err := exec.CommandContext(ctx, dockerCmd, "pull", "--platform", c.Platform, c.Image).CombinedOutput()
	logger.Info(string(out))
	if err != nil {
		return fmt.Errorf("could not pull %s for %s: %w", c.Image, c.Platform, err)
	}
	return nil
}

// runArgs returns the docker arguments running args in workdir. The host
// arguments go right after --platform.
func (c Container) runArgs(workdir string, host, args []string) ([]string, error) {
	cmd := []string{"run", "--rm", "--platform", c.Platform}
	cmd = append(cmd, host...)
	cmd = append(cmd, "-v", workdir+":"+workdir)
	for _, v := range c.Volumes {
		abs, err := filepath.Abs(v)
		if err != nil {
			return nil, fmt.Errorf("could not find volume path '%s': %v", v, err)
		}
		cmd = append(cmd, "-v", abs+":"+abs)
	}
	cmd = append(cmd, "--hostname", dockerHostname, "-w", workdir)
	if len(args) == 0 {
		return append(cmd, "-it", c.Image, "/bin/sh", "-c", dockerShell), nil
	}
	cmd = append(cmd, c.Image)
	return append(cmd, args...), nil
}

// Args returns the docker arguments running args in the container with the
// current directory mounted as working directory.
func (c Container) Args(ctx context.Context, args []string) ([]string, error) {
	host, err := dockerHostArgs(ctx, c)
	if err != nil {
		return nil, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return c.runArgs(cwd, host, args)
}

// Run runs args in the container. Without args it opens an interactive
// shell on the terminal of stdin.
func (c Container) Run(ctx context.Context, args []string) error {
	if FileExists("/.dockerenv") == nil {
		return ErrInsideDocker
	}

	cmd, err := c.Args(ctx, args)
	if err != nil {
		return err
	}
	logger.Debugf("%v\n", append([]string{dockerCmd}, cmd...))

	dc := exec.CommandContext(ctx, dockerCmd, cmd...)
	if len(args) == 0 {
		return dockerInteractive(dc, os.Stdin)
	}

	wg, err := startReaders(dc)
	if err != nil {
		return err
	}
	if err := dc.Start(); err != nil {
		return err
	}
	// pipes close on Wait
	wg.Wait()
	return dc.Wait()
}

func startReader(r io.Reader, w io.Writer, wg *sync.WaitGroup) {
	scanner := bufio.NewScanner(r)
	if wg != nil {
		wg.Add(1)
	}
	go func() {
		if wg != nil {
			defer wg.Done()
		}
		for scanner.Scan() {
			fmt.Fprintln(w, scanner.Text())
		}
	}()
}

func startReaders(c *exec.Cmd) (*sync.WaitGroup, error) {
	var wg sync.WaitGroup
	inWriter, err := c.StdinPipe()
	if err != nil {
		return nil, err
	}
	startReader(os.Stdin, inWriter, nil)

	outReader, err := c.StdoutPipe()
	if err != nil {
		return nil, err
	}
	startReader(outReader, os.Stdout, &wg)
	errReader, err := c.StderrPipe()
	if err != nil {
		return nil, err
	}
	startReader(errReader, os.Stderr, &wg)
	return &wg, nil
}
