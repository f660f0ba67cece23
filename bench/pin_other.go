// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !linux

package bench

import "fmt"

func pin(int) error {
	return fmt.Errorf("thread pinning is only supported on linux")
}
