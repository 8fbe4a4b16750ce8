// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package scaffold

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Kind is the category a name is registered under.
type Kind string

const (
	KindProject    Kind = "project"
	KindModule     Kind = "module"
	KindLibrary    Kind = "library"
	KindExecutable Kind = "executable"
	KindScript     Kind = "script"
	KindClass      Kind = "cpp-class"
)

func (k Kind) valid() bool {
	switch k {
	case KindProject, KindModule, KindLibrary, KindExecutable, KindScript, KindClass:
		return true
	}

	return false
}

var errRegistryKind = errors.New("unknown kind in naming registry")

type RegistryFile struct {
	Schema  int             `yaml:"schema"`
	Entries []RegistryEntry `yaml:"entries"`
}

type RegistryEntry struct {
	Name  string `yaml:"name"`
	Kind  Kind   `yaml:"kind"`
	Owner string `yaml:"owner,omitempty"`
}

// Registry answers whether a name is already taken.
type Registry interface {
	Lookup(kind Kind, name string) (RegistryEntry, bool, error)
}

// NopRegistry knows no names.
type NopRegistry struct{}

func (NopRegistry) Lookup(Kind, string) (RegistryEntry, bool, error) {
	return RegistryEntry{}, false, nil
}

var errRegistryPathEmpty = errors.New("naming registry path empty")

// FileRegistry reads a YAML naming registry the first time it is queried.
// Read failures surface from Lookup.
type FileRegistry struct {
	path string

	once    sync.Once
	entries []RegistryEntry
	err     error
}

// OpenRegistry returns a registry backed by path, or a NopRegistry when
// path is empty.
func OpenRegistry(path string) Registry {
	if path == "" {
		return NopRegistry{}
	}

	return &FileRegistry{path: path}
}

func (r *FileRegistry) Lookup(kind Kind, name string) (RegistryEntry, bool, error) {
	r.once.Do(func() {
		var file *RegistryFile
		file, r.err = ReadRegistry(r.path)
		if file != nil {
			r.entries = file.Entries
		}
	})
	if r.err != nil {
		return RegistryEntry{}, false, r.err
	}

	for _, entry := range r.entries {
		if entry.Kind == kind && strings.EqualFold(entry.Name, name) {
			return entry, true, nil
		}
	}

	return RegistryEntry{}, false, nil
}

func ReadRegistry(path string) (*RegistryFile, error) {
	if path == "" {
		return nil, errRegistryPathEmpty
	}
	data, err := readFileSafe(path)
	if err != nil {
		return nil, fmt.Errorf("read naming registry: %w", err)
	}

	var file RegistryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse naming registry: %w", err)
	}
	for _, entry := range file.Entries {
		if !entry.Kind.valid() {
			return nil, fmt.Errorf("%w: <%s> for <%s>", errRegistryKind, entry.Kind, entry.Name)
		}
	}

	return &file, nil
}

func writeRegistry(path string, file *RegistryFile) error {
	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode naming registry: %w", err)
	}

	return WriteFileAtomic(path, data, 0o600)
}
