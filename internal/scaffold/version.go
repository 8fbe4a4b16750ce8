// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package scaffold

import (
	"fmt"
	"strconv"

	"github.com/Masterminds/semver/v3"
)

// ToolkitVersion is the Elements release new projects depend on by default.
const ToolkitVersion = "6.3.0"

// ToolkitName is the dependency every project gets.
const ToolkitName = "Elements"

// FormatToolkitVersion renders MAJOR.MINOR, adding .PATCH only when the
// patch level is not zero.
func FormatToolkitVersion(raw string) (string, error) {
	v, err := semver.NewVersion(raw)
	if err != nil {
		return "", fmt.Errorf("%w: toolkit version %q: %w", ErrValidation, raw, err)
	}

	out := strconv.FormatUint(v.Major(), 10) + "." + strconv.FormatUint(v.Minor(), 10)
	if v.Patch() > 0 {
		out += "." + strconv.FormatUint(v.Patch(), 10)
	}

	return out, nil
}
