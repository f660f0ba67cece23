// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package bench runs workloads of concurrent atomic operations on shared
// cells, measures them and verifies their final state.
//
// A Driver runs a Workload for a number of rounds. In every round the
// workload's cells are reset, Config.Workers goroutines are started on their
// own OS threads and released together, and each performs Config.Iterations
// operations. After all workers joined, the workload verifies that no update
// was lost, duplicated or torn.
package bench
