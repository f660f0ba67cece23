// Copyright (C) 2024 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package tools

import (
	"context"
	"fmt"
	"os/exec"
	"os/user"
	"strings"

	"vatomic/core"
	"vatomic/logger"
)

const binfmtDir = "/proc/sys/fs/binfmt_misc"

// binfmtEntry returns the binfmt_misc handler qemu-user-static registers
// for arch.
func binfmtEntry(arch core.Arch) string {
	switch arch {
	case core.AMD64:
		return binfmtDir + "/qemu-x86_64"
	case core.RISCV64:
		return binfmtDir + "/qemu-riscv64"
	default:
		return ""
	}
}

// dockerHostArgs checks that the docker daemon can run c and returns the
// user mapping for files written to mounted volumes. A foreign container
// arch needs a binfmt_misc handler on the host kernel.
func dockerHostArgs(ctx context.Context, c Container) ([]string, error) {
	u, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("could not find current user: %v", err)
	}

	out, err := exec.CommandContext(ctx, dockerCmd, "info", "-f", "{{println .SecurityOptions}}").Output()
	if err != nil {
		return nil, fmt.Errorf("could not run docker: %v", err)
	}

	if c.Arch != core.HostArch() {
		if e := binfmtEntry(c.Arch); e == "" || FileExists(e) != nil {
			logger.Warnf("no binfmt_misc handler for %v on this host; %s containers may not start "+
				"(install qemu-user-static)", c.Arch, c.Platform)
		}
	}

	// rootless docker maps container root to the user
	if strings.Contains(string(out), "rootless") || u.Uid == "0" {
		return nil, nil
	}

	groups, err := exec.CommandContext(ctx, "id", "-Gn").Output()
	if err != nil {
		return nil, fmt.Errorf("could not get user groups: %v", err)
	}
	if !strings.Contains(string(groups), "docker") {
		return nil, fmt.Errorf("user %s is not in docker group", u.Username)
	}
	return []string{"-u", u.Uid + ":" + u.Gid}, nil
}
