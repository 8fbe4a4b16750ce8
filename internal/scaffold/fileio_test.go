// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanPath(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	abs := filepath.Join(tmpDir, "CMakeLists.txt")

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"Relative", "module/CMakeLists.txt", filepath.Clean("module/CMakeLists.txt"), nil},
		{"Absolute", abs, abs, nil},
		{"ParentTraversal", "../CMakeLists.txt", "", errPathOutsideWorkspace},
		{"Empty", "", "", errEmptyPath},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := cleanPath(tc.input)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scripts", "myscript")
	require.NoError(t, WriteFileAtomic(path, []byte("#!/bin/sh\n"), 0o755))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "#!/bin/sh\n", string(data))
	require.NoFileExists(t, path+".tmp")

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestCopyFile(t *testing.T) {
	t.Parallel()

	dst := filepath.Join(t.TempDir(), "nested", "copy.in")
	require.NoError(t, CopyFile(dst, strings.NewReader("%(NAME)s"), 0o600))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "%(NAME)s", string(data))
}

func TestExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.True(t, Exists(dir))
	require.False(t, Exists(filepath.Join(dir, "nope")))
}

func TestCheckWritable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, CheckWritable(filepath.Join(dir, "new", "deeper")))

	file := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(file, nil, 0o600))
	require.ErrorIs(t, CheckWritable(filepath.Join(file, "child")), ErrValidation)
}

func TestCheckWritableExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), CMakeListsFile)
	require.NoError(t, os.WriteFile(path, []byte("elements_subdir(Mod)\n"), 0o600))
	require.NoError(t, CheckWritable(path))

	if os.Geteuid() == 0 {
		return
	}
	require.NoError(t, os.Chmod(path, 0o400))
	require.ErrorIs(t, CheckWritable(path), ErrValidation)
}
