// Copyright (C) 2024 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package tools

import (
	"context"
	"fmt"
	"os/user"
)

// dockerHostArgs maps the user into the container. Docker Desktop emulates
// every linux platform, so c needs no host check.
func dockerHostArgs(_ context.Context, c Container) ([]string, error) {
	u, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("could not find current user for %s container: %v", c.Platform, err)
	}
	return []string{"-u", u.Uid + ":" + u.Gid}, nil
}
