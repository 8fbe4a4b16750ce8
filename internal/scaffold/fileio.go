// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package scaffold

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	errPathOutsideWorkspace = errors.New("path escapes working directory")
	errEmptyPath            = errors.New("path empty")
)

// WriteFileAtomic writes data next to path and renames it into place, so a
// failed write never leaves a truncated file behind.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	safePath, err := cleanPath(path)
	if err != nil {
		return err
	}
	if parentErr := makeParent(safePath); parentErr != nil {
		return parentErr
	}

	tmp := safePath + ".tmp"
	tmpFile, err := openWritableFile(tmp, perm)
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}

	if _, err := tmpFile.Write(data); err != nil {
		closeErr := tmpFile.Close()
		removeErr := os.Remove(tmp)

		combined := fmt.Errorf("write %s: %w", safePath, err)
		if closeErr != nil {
			combined = errors.Join(combined, fmt.Errorf("close temp file: %w", closeErr))
		}
		if removeErr != nil {
			combined = errors.Join(combined, fmt.Errorf("remove temp file: %w", removeErr))
		}

		return combined
	}

	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmp)

		return fmt.Errorf("close temp: %w", err)
	}
	// OpenFile only applies perm on creation and is subject to umask.
	if err := os.Chmod(tmp, perm); err != nil {
		_ = os.Remove(tmp)

		return fmt.Errorf("chmod temp: %w", err)
	}

	if err := os.Rename(tmp, safePath); err != nil {
		_ = os.Remove(tmp)

		return fmt.Errorf("rename temp: %w", err)
	}

	return nil
}

// CopyFile copies src to dst, creating the parent of dst.
func CopyFile(dst string, src io.Reader, perm os.FileMode) error {
	safePath, err := cleanPath(dst)
	if err != nil {
		return err
	}
	if parentErr := makeParent(safePath); parentErr != nil {
		return parentErr
	}

	f, err := openWritableFile(safePath, perm)
	if err != nil {
		return fmt.Errorf("create %s: %w", safePath, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if _, err := io.Copy(f, src); err != nil {
		return fmt.Errorf("write %s: %w", safePath, err)
	}

	return nil
}

// Exists reports whether path exists. Errors other than "does not exist"
// count as existing so callers never overwrite something they cannot stat.
func Exists(path string) bool {
	_, err := os.Stat(path)

	return err == nil || !errors.Is(err, os.ErrNotExist)
}

func makeParent(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	return os.MkdirAll(dir, 0o750)
}

func cleanPath(path string) (string, error) {
	if path == "" {
		return "", errEmptyPath
	}
	cleaned := filepath.Clean(path)

	if filepath.IsAbs(cleaned) {
		return cleaned, nil
	}

	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", errPathOutsideWorkspace
	}

	return cleaned, nil
}

func readFileSafe(path string) ([]byte, error) {
	cleaned, err := cleanPath(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, path)
	}

	return os.ReadFile(cleaned)
}

func openWritableFile(path string, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
}
