// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// CheckWritable verifies that path can be created or rewritten. An existing
// regular file must be writable and sit in a writable directory; otherwise
// the closest existing ancestor must be a writable directory.
func CheckWritable(path string) error {
	dir := filepath.Clean(path)
	if info, err := os.Stat(dir); err == nil && info.Mode().IsRegular() {
		if err := unix.Access(dir, unix.W_OK); err != nil {
			return fmt.Errorf("%w: <%s> is not writable: %w", ErrValidation, dir, err)
		}
		dir = filepath.Dir(dir)
	}
	for {
		if info, err := os.Stat(dir); err == nil {
			if !info.IsDir() {
				return fmt.Errorf("%w: <%s> is not a directory", ErrValidation, dir)
			}

			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if err := unix.Access(dir, unix.W_OK|unix.X_OK); err != nil {
		return fmt.Errorf("%w: <%s> is not writable: %w", ErrValidation, dir, err)
	}

	return nil
}
