// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package script implements add-script, which drops a new script into the
// scripts/ directory of an Elements module and installs it from
// CMakeLists.txt.
package script

import (
	"time"

	"github.com/pion/logging"
	"github.com/pion/scaffold/internal/scaffold"
)

const (
	ScriptsDir = "scripts"

	// Scripts carry no version of their own; names are checked as 1.0.
	nameCheckVersion = "1.0"
	auxScriptIn      = "Script_template.in"
	dateLayout       = "01/02/06"
)

type Options struct {
	Name      string
	ModuleDir string
	Author    string
	Now       func() time.Time

	Aux      *scaffold.AuxLocator
	Registry scaffold.Registry
	Logger   logging.LeveledLogger
}

func DefaultOptions() Options {
	return Options{
		ModuleDir: ".",
		Now:       time.Now,
	}
}

func (o Options) WithDefaults() Options {
	def := DefaultOptions()

	if o.ModuleDir == "" {
		o.ModuleDir = def.ModuleDir
	}
	if o.Now == nil {
		o.Now = def.Now
	}
	if o.Author == "" {
		o.Author = scaffold.ResolveAuthor("")
	}
	if o.Aux == nil {
		o.Aux = scaffold.DefaultAuxLocator(nil)
	}
	if o.Registry == nil {
		o.Registry = scaffold.NopRegistry{}
	}
	if o.Logger == nil {
		o.Logger = scaffold.DiscardLogger()
	}

	return o
}
