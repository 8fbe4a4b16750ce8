// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func isolateHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	return home
}

func TestResolveAuthorConfigured(t *testing.T) {
	isolateHome(t)

	require.Equal(t, "Ada Lovelace", ResolveAuthor("  Ada Lovelace "))
}

func TestResolveAuthorFromGitConfig(t *testing.T) {
	home := isolateHome(t)
	gitconfig := "[user]\n\tname = Grace Hopper\n\temail = grace@example.org\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, ".gitconfig"), []byte(gitconfig), 0o600))

	require.Equal(t, "Grace Hopper", ResolveAuthor(""))
}

func TestResolveAuthorFallsBackToLogin(t *testing.T) {
	isolateHome(t)
	t.Setenv("USER", "hopper")

	require.Equal(t, "hopper", ResolveAuthor(""))

	t.Setenv("USER", "")
	t.Setenv("LOGNAME", "")
	t.Setenv("USERNAME", "")
	require.Equal(t, unknownAuthor, ResolveAuthor(""))
}
