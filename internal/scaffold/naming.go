// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package scaffold

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/pion/logging"
	"golang.org/x/mod/module"
)

var (
	namePattern    = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	versionPattern = regexp.MustCompile(`^\d+\.\d+(\.\d+)?$`)
)

// CheckName reports whether name is usable as a project, module or file
// name.
func CheckName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: name %q must start with a letter and contain only letters, digits or '_'",
			ErrValidation, name)
	}
	// Rejects names such as "aux" or "con" that cannot exist on every OS.
	if err := module.CheckFilePath(name); err != nil {
		return fmt.Errorf("%w: name %q is not portable: %w", ErrValidation, name, err)
	}

	return nil
}

// CheckVersion reports whether version has the MAJOR.MINOR[.PATCH] form.
func CheckVersion(version string) error {
	if !versionPattern.MatchString(version) {
		return fmt.Errorf("%w: version %q must look like MAJOR.MINOR[.PATCH]", ErrValidation, version)
	}
	if _, err := semver.NewVersion(version); err != nil {
		return fmt.Errorf("%w: version %q: %w", ErrValidation, version, err)
	}

	return nil
}

// Validator checks names against the syntax rules and the naming registry.
type Validator struct {
	registry Registry
	log      logging.LeveledLogger
}

func NewValidator(registry Registry, log logging.LeveledLogger) *Validator {
	if registry == nil {
		registry = NopRegistry{}
	}

	return &Validator{registry: registry, log: log}
}

// IsValidName never fails loudly: every violation is logged and reported
// as false.
func (v *Validator) IsValidName(kind Kind, name, version string) bool {
	if err := CheckName(name); err != nil {
		v.log.Errorf("# %v", err)

		return false
	}
	if err := CheckVersion(version); err != nil {
		v.log.Errorf("# %v", err)

		return false
	}

	entry, found, err := v.registry.Lookup(kind, name)
	if err != nil {
		v.log.Warnf("# Naming registry not available, <%s> not checked: %v", name, err)

		return true
	}
	if found {
		owner := entry.Owner
		if owner == "" {
			owner = "unknown owner"
		}
		v.log.Errorf("# The %s name <%s> is already registered (%s)", kind, name, owner)

		return false
	}
	v.log.Debugf("# The %s name <%s> is free", kind, name)

	return true
}

// ValidateDependencies rejects invalid or repeated dependency entries.
func (v *Validator) ValidateDependencies(deps []Dependency) error {
	seen := make(map[string]struct{}, len(deps))
	for _, dep := range deps {
		if _, dup := seen[dep.Name]; dup {
			return fmt.Errorf("%w: found twice the dependency <%s>", ErrValidation, dep.Name)
		}
		seen[dep.Name] = struct{}{}

		if err := CheckName(dep.Name); err != nil {
			return err
		}
		if err := CheckVersion(dep.Version); err != nil {
			return err
		}
	}

	return nil
}
