// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package core contains the most basic objects of vatomic.
// These are memory orderings, atomic operations, widths, architectures and the
// descriptors combining them.
package core
