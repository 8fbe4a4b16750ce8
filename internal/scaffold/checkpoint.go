// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package scaffold

import (
	"errors"
	"fmt"
	"os"
)

// Checkpoint snapshots a file to "<file>~" before it is rewritten. Commit
// drops the snapshot; Rollback restores it. Rollback after Commit is a
// no-op, so it can always be deferred.
type Checkpoint struct {
	path   string
	backup string
	data   []byte
	perm   os.FileMode
	done   bool
}

// Acquire snapshots path. A stale backup from an earlier run is replaced.
func Acquire(path string) (*Checkpoint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("checkpoint %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("checkpoint %s: %w", path, err)
	}

	cp := &Checkpoint{
		path:   path,
		backup: BackupPath(path),
		data:   data,
		perm:   info.Mode().Perm(),
	}
	if err := WriteFileAtomic(cp.backup, data, cp.perm); err != nil {
		return nil, fmt.Errorf("checkpoint %s: %w", path, err)
	}

	return cp, nil
}

func (c *Checkpoint) BackupPath() string {
	return c.backup
}

// Write replaces the file content, keeping its permissions.
func (c *Checkpoint) Write(data []byte) error {
	return WriteFileAtomic(c.path, data, c.perm)
}

// Commit keeps the current file and removes the backup.
func (c *Checkpoint) Commit() error {
	if c.done {
		return nil
	}
	c.done = true
	if err := os.Remove(c.backup); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove backup %s: %w", c.backup, err)
	}

	return nil
}

// Rollback restores the snapshot and removes the backup.
func (c *Checkpoint) Rollback() error {
	if c.done {
		return nil
	}
	c.done = true

	if err := WriteFileAtomic(c.path, c.data, c.perm); err != nil {
		return fmt.Errorf("restore %s (backup kept at %s): %w", c.path, c.backup, err)
	}
	if err := os.Remove(c.backup); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove backup %s: %w", c.backup, err)
	}

	return nil
}
