// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package script

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/pion/scaffold/internal/auxdir"
	"github.com/pion/scaffold/internal/cmakelists"
	"github.com/pion/scaffold/internal/scaffold"
	"github.com/stretchr/testify/require"
)

const moduleCMake = `CMAKE_MINIMUM_REQUIRED(VERSION 2.8.5)

elements_subdir(ElementsExamples)

elements_depends_on_subdirs(ElementsKernel)

elements_add_library(ElementsExamples src/lib/*.cpp
                     LINK_LIBRARIES ElementsKernel
                     PUBLIC_HEADERS ElementsExamples)
`

func newModule(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, scaffold.CMakeListsFile), []byte(moduleCMake), 0o600))

	return dir
}

func testOptions(dir, name string) Options {
	return Options{
		Name:      name,
		ModuleDir: dir,
		Author:    "Jane Doe",
		Now: func() time.Time {
			return time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC)
		},
		Aux: scaffold.NewAuxLocator(nil, auxdir.FS()),
	}
}

func readCMake(t *testing.T, dir string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, scaffold.CMakeListsFile))
	require.NoError(t, err)

	return string(data)
}

func TestRunAddsScript(t *testing.T) {
	t.Parallel()

	dir := newModule(t)
	require.NoError(t, Run(context.Background(), testOptions(dir, "myscript")))

	entries, err := os.ReadDir(filepath.Join(dir, ScriptsDir))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "myscript", entries[0].Name())

	path := filepath.Join(dir, ScriptsDir, "myscript")
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(body), "# File:    scripts/myscript\n")
	require.Contains(t, string(body), "# Program: myscript\n")
	require.Contains(t, string(body), "# Created: 10/18/26\n")
	require.Contains(t, string(body), "# Author:  Jane Doe\n")

	require.Equal(t, moduleCMake+"elements_install_scripts()\n", readCMake(t, dir))
	require.NoFileExists(t, filepath.Join(dir, scaffold.BackupPath(scaffold.CMakeListsFile)))

	desc, err := cmakelists.Parse(readCMake(t, dir))
	require.NoError(t, err)
	original, err := cmakelists.Parse(moduleCMake)
	require.NoError(t, err)
	require.Len(t, desc.Directives(), len(original.Directives())+1)
}

func TestRunSecondScriptKeepsOneDirective(t *testing.T) {
	t.Parallel()

	dir := newModule(t)
	require.NoError(t, Run(context.Background(), testOptions(dir, "first")))
	after := readCMake(t, dir)
	require.NoError(t, Run(context.Background(), testOptions(dir, "second")))

	require.Equal(t, after, readCMake(t, dir))
	require.FileExists(t, filepath.Join(dir, ScriptsDir, "second"))
}

func TestRunFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(t *testing.T, dir string)
		opts    func(dir string) Options
		wantErr error
	}{
		{
			name:    "BadName",
			opts:    func(dir string) Options { return testOptions(dir, "my-script") },
			wantErr: scaffold.ErrValidation,
		},
		{
			name: "Collision",
			setup: func(t *testing.T, dir string) {
				t.Helper()
				require.NoError(t, os.MkdirAll(filepath.Join(dir, ScriptsDir), 0o750))
				require.NoError(t, os.WriteFile(filepath.Join(dir, ScriptsDir, "myscript"), []byte("x"), 0o600))
			},
			opts:    func(dir string) Options { return testOptions(dir, "myscript") },
			wantErr: scaffold.ErrCollision,
		},
		{
			name: "MissingTemplate",
			opts: func(dir string) Options {
				opts := testOptions(dir, "myscript")
				opts.Aux = scaffold.NewAuxLocator(nil, fstest.MapFS{})

				return opts
			},
			wantErr: scaffold.ErrNotFound,
		},
		{
			name: "UnboundPlaceholder",
			opts: func(dir string) Options {
				opts := testOptions(dir, "myscript")
				opts.Aux = scaffold.NewAuxLocator(nil, fstest.MapFS{
					"Script_template.in": {Data: []byte("# %(LICENSE)s\n")},
				})

				return opts
			},
			wantErr: scaffold.ErrMissingBinding,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := newModule(t)
			if tc.setup != nil {
				tc.setup(t, dir)
			}

			err := Run(context.Background(), tc.opts(dir))
			require.ErrorIs(t, err, tc.wantErr)
			require.Equal(t, moduleCMake, readCMake(t, dir))
			require.NoFileExists(t, filepath.Join(dir, ScriptsDir, "Script_template.in"))
			if tc.setup == nil {
				require.NoDirExists(t, filepath.Join(dir, ScriptsDir))
			}
		})
	}
}

func TestRunOutsideModule(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	err := Run(context.Background(), testOptions(dir, "myscript"))
	require.ErrorIs(t, err, scaffold.ErrNotFound)
	require.NoDirExists(t, filepath.Join(dir, ScriptsDir))
}

func TestRunMissingName(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Run(context.Background(), testOptions(newModule(t), "")), errMissingName)
}
