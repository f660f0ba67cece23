// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bench

import "fmt"

// VerifyError reports the final state of a workload that its operations
// could not have produced atomically.
type VerifyError struct {
	Workload string
	Detail   string
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("%s: verification failed: %s", e.Workload, e.Detail)
}

func verifyErrorf(w Workload, format string, args ...any) error {
	return &VerifyError{Workload: w.Name(), Detail: fmt.Sprintf(format, args...)}
}
