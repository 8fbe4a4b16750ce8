// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package scaffold

import (
	"os"
	"strings"

	"github.com/go-git/go-git/v5/config"
)

const unknownAuthor = "unknown"

// ResolveAuthor picks the author written into generated files: the
// configured name, then user.name from the global git config, then the
// login name.
func ResolveAuthor(configured string) string {
	if name := strings.TrimSpace(configured); name != "" {
		return name
	}
	if cfg, err := config.LoadConfig(config.GlobalScope); err == nil {
		if name := strings.TrimSpace(cfg.User.Name); name != "" {
			return name
		}
	}
	for _, env := range []string{"USER", "LOGNAME", "USERNAME"} {
		if name := strings.TrimSpace(os.Getenv(env)); name != "" {
			return name
		}
	}

	return unknownAuthor
}
