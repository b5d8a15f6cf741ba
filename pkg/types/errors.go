// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import "errors"

// ErrConfig marks fatal configuration problems: weights that do not sum to
// 1.0, unknown architecture modes, malformed globs, unknown severities.
var ErrConfig = errors.New("invalid configuration")

// ErrIO marks a missing or unreadable project root.
var ErrIO = errors.New("project root unreadable")

// ErrRegression is returned by the snapshot checker when the last recorded
// overall score exceeds the current one.
var ErrRegression = errors.New("score regression")
