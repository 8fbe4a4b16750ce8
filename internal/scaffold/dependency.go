// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package scaffold

import (
	"errors"
	"fmt"
	"strings"
)

// Dependency is a project this project is built on top of.
type Dependency struct {
	Name    string
	Version string
}

func (d Dependency) String() string {
	return d.Name + " " + d.Version
}

var (
	errDependencyEmpty   = errors.New("dependency empty")
	errDependencyVersion = errors.New("dependency missing version")
)

// ParseDependency accepts NAME:VERSION, NAME@VERSION, NAME=VERSION or
// "NAME VERSION".
func ParseDependency(raw string) (Dependency, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Dependency{}, errDependencyEmpty
	}

	name, version, err := splitDependency(trimmed)
	if err != nil {
		return Dependency{}, err
	}

	return Dependency{Name: name, Version: version}, nil
}

func splitDependency(raw string) (name string, version string, err error) {
	if fields := strings.Fields(raw); len(fields) == 2 {
		return fields[0], fields[1], nil
	}

	sep := strings.IndexAny(raw, ":@=")
	if sep <= 0 || sep == len(raw)-1 {
		return "", "", fmt.Errorf("%w: %q", errDependencyVersion, raw)
	}

	return strings.TrimSpace(raw[:sep]), strings.TrimSpace(raw[sep+1:]), nil
}

// ParseDependencies parses every raw value in order. A value may hold
// several comma-separated dependencies.
func ParseDependencies(raws []string) ([]Dependency, error) {
	fields := splitAndTrim(raws)
	deps := make([]Dependency, 0, len(fields))
	for _, raw := range fields {
		dep, err := ParseDependency(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		deps = append(deps, dep)
	}

	return deps, nil
}

func splitAndTrim(fields []string) []string {
	var out []string
	for _, field := range fields {
		for _, part := range strings.Split(field, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}

	return out
}
