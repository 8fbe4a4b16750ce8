// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package removeclass implements remove-cpp-class, which deletes the header,
// source and unit test of a C++ class and drops it from CMakeLists.txt.
package removeclass

import (
	"github.com/pion/logging"
	"github.com/pion/scaffold/internal/scaffold"
)

type Options struct {
	ClassName string
	ModuleDir string

	Confirm scaffold.Confirmer
	Logger  logging.LeveledLogger
}

func DefaultOptions() Options {
	return Options{ModuleDir: "."}
}

func (o Options) WithDefaults() Options {
	def := DefaultOptions()

	if o.ModuleDir == "" {
		o.ModuleDir = def.ModuleDir
	}
	if o.Confirm == nil {
		o.Confirm = scaffold.Always(false)
	}
	if o.Logger == nil {
		o.Logger = scaffold.DiscardLogger()
	}

	return o
}
