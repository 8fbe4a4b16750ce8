// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package scaffold

import "errors"

// Failure classes shared by every scaffold operation. Callers wrap them
// with context and the CLI maps them to exit codes.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrCollision  = errors.New("target already exists")
	ErrCancelled  = errors.New("stopped by user")
)
