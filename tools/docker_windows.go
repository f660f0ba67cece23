// Copyright (C) 2024 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package tools

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

func dockerHostArgs(_ context.Context, c Container) ([]string, error) {
	return nil, fmt.Errorf("%s containers are not supported on windows", c.Platform)
}

func dockerInteractive(_ *exec.Cmd, in *os.File) error {
	return fmt.Errorf("%w: %s", ErrNotTerminal, in.Name())
}
