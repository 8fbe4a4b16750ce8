// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package scaffold

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pion/scaffold/internal/auxdir"
)

// AuxLocator finds auxiliary template files. Directories are searched in
// order; the fallback file system is consulted last.
type AuxLocator struct {
	dirs     []string
	fallback fs.FS
}

func NewAuxLocator(dirs []string, fallback fs.FS) *AuxLocator {
	return &AuxLocator{dirs: dirs, fallback: fallback}
}

// DefaultAuxLocator searches $ELEMENTS_AUX_PATH, then extra, then the
// built-in templates.
func DefaultAuxLocator(extra []string) *AuxLocator {
	var dirs []string
	for _, dir := range filepath.SplitList(os.Getenv(EnvAuxPath)) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	dirs = append(dirs, extra...)

	return NewAuxLocator(dirs, auxdir.FS())
}

// Locate returns where name would be read from.
func (l *AuxLocator) Locate(name string) (string, error) {
	for _, dir := range l.dirs {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}
	if l.fallback != nil {
		if _, err := fs.Stat(l.fallback, name); err == nil {
			return "builtin:" + name, nil
		}
	}

	return "", fmt.Errorf("%w: auxiliary file <%s>", ErrNotFound, name)
}

func (l *AuxLocator) exists(name string) bool {
	_, err := l.Locate(name)

	return err == nil
}

func (l *AuxLocator) Open(name string) (io.ReadCloser, error) {
	for _, dir := range l.dirs {
		f, err := os.Open(filepath.Join(dir, name))
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("open auxiliary file: %w", err)
		}
	}
	if l.fallback != nil {
		f, err := l.fallback.Open(name)
		if err == nil {
			return f, nil
		}
	}

	return nil, fmt.Errorf("%w: auxiliary file <%s>", ErrNotFound, name)
}

func (l *AuxLocator) read(name string) (string, error) {
	rc, err := l.Open(name)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = rc.Close()
	}()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read auxiliary file <%s>: %w", name, err)
	}

	return string(data), nil
}

// CopyTo copies name into dir and returns the path of the copy.
func (l *AuxLocator) CopyTo(dir, name string) (string, error) {
	rc, err := l.Open(name)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = rc.Close()
	}()

	dst := filepath.Join(dir, name)
	if err := CopyFile(dst, rc, 0o600); err != nil {
		return "", err
	}

	return dst, nil
}
