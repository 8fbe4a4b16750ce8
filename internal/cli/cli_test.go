// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pion/scaffold/internal/cmakelists"
	"github.com/pion/scaffold/internal/scaffold"
	"github.com/stretchr/testify/require"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{errors.New("boom"), ExitFailure},
		{fmt.Errorf("%w: bad", scaffold.ErrValidation), ExitValidation},
		{fmt.Errorf("%w: gone", scaffold.ErrNotFound), ExitNotFound},
		{&scaffold.StageError{Stage: scaffold.StageValidating, Err: scaffold.ErrCollision}, ExitCollision},
		{fmt.Errorf("CMakeLists.txt: %w", cmakelists.ErrParse), ExitParse},
		{&scaffold.MissingBindingError{Key: "AUTHOR"}, ExitParse},
		{scaffold.ErrCancelled, ExitCancelled},
	}

	for _, tc := range tests {
		require.Equal(t, tc.want, ExitCode(tc.err), "%v", tc.err)
	}
}

// isolate points every environment input of the binary into dir.
func isolate(t *testing.T, dir string) {
	t.Helper()

	t.Setenv(scaffold.EnvUserArea, dir)
	t.Setenv(scaffold.EnvAuxPath, "")
	t.Setenv(scaffold.EnvNamingDB, "")
	t.Setenv(scaffold.EnvConfig, filepath.Join(dir, "missing.yaml"))
}

func TestCreateProjectCommand(t *testing.T) {
	root := t.TempDir()
	isolate(t, root)

	var stderr bytes.Buffer
	err := execute(context.Background(), []string{
		"create-project", "test_project", "2.1",
		"-d", "Alexandria:2.10",
		"--novd",
	}, &stderr)
	require.NoError(t, err)
	require.Contains(t, stderr.String(), "Script over.")

	data, err := os.ReadFile(filepath.Join(root, "test_project", scaffold.CMakeListsFile))
	require.NoError(t, err)
	require.Contains(t, string(data), "elements_project(test_project 2.1 USE Elements 6.3 Alexandria 2.10)")
}

func TestCreateProjectCommandBadDependency(t *testing.T) {
	root := t.TempDir()
	isolate(t, root)

	var stderr bytes.Buffer
	err := execute(context.Background(), []string{"create-project", "test_project", "-d", "Alexandria"}, &stderr)
	require.Equal(t, ExitValidation, ExitCode(err))
	require.Contains(t, stderr.String(), "Script aborted!")

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestCreateProjectCommandConfig(t *testing.T) {
	root := t.TempDir()
	isolate(t, root)

	registry := filepath.Join(root, "names.yaml")
	require.NoError(t, os.WriteFile(registry, []byte("entries:\n  - {name: Taken, kind: project, owner: SDC}\n"), 0o600))
	config := filepath.Join(root, "scaffold.yaml")
	require.NoError(t, os.WriteFile(config, []byte("naming_registry: "+registry+"\n"), 0o600))

	var stderr bytes.Buffer
	err := execute(context.Background(), []string{"--config", config, "create-project", "Taken"}, &stderr)
	require.Equal(t, ExitValidation, ExitCode(err))
	require.Contains(t, stderr.String(), "already registered")
	require.NoDirExists(t, filepath.Join(root, "Taken"))
}

func TestModuleCommands(t *testing.T) {
	root := t.TempDir()
	isolate(t, root)

	module := filepath.Join(root, "Mod")
	cmake := "elements_subdir(Mod)\n\nelements_add_library(Mod src/lib/Foo.cpp)\n"
	require.NoError(t, os.MkdirAll(filepath.Join(module, "src", "lib"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(module, scaffold.CMakeListsFile), []byte(cmake), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(module, "src", "lib", "Foo.cpp"), []byte("// Foo\n"), 0o600))

	var stderr bytes.Buffer
	require.NoError(t, execute(context.Background(), []string{"add-script", "run_me", "--module-dir", module}, &stderr))
	require.FileExists(t, filepath.Join(module, "scripts", "run_me"))

	err := execute(context.Background(), []string{"add-script", "run_me", "--module-dir", module}, &stderr)
	require.Equal(t, ExitCollision, ExitCode(err))

	require.NoError(t, execute(context.Background(), []string{"-y", "remove-cpp-class", "Foo", "--module-dir", module}, &stderr))
	require.NoFileExists(t, filepath.Join(module, "src", "lib", "Foo.cpp"))

	data, err := os.ReadFile(filepath.Join(module, scaffold.CMakeListsFile))
	require.NoError(t, err)
	require.Equal(t, "elements_subdir(Mod)\n\nelements_add_library(Mod)\nelements_install_scripts()\n", string(data))
}

func TestUnknownModule(t *testing.T) {
	root := t.TempDir()
	isolate(t, root)

	var stderr bytes.Buffer
	err := execute(context.Background(), []string{"add-script", "run_me", "--module-dir", root}, &stderr)
	require.Equal(t, ExitNotFound, ExitCode(err))
}
