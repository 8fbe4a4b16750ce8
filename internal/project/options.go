// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package project implements create-project, which lays out a new Elements
// project from the auxiliary templates.
package project

import (
	"github.com/pion/logging"
	"github.com/pion/scaffold/internal/scaffold"
)

const (
	DefaultVersion = "1.0"

	auxCMakeListsIn = "CMakeLists.txt.in"
	auxMakefileIn   = "Makefile.in"
	auxProjectDocIn = "doc_project.rst.in"
	docDirName      = "doc"
)

type Options struct {
	Name               string
	Version            string
	Dependencies       []scaffold.Dependency
	NoVersionDirectory bool
	DestinationRoot    string
	ToolkitVersion     string

	Aux      *scaffold.AuxLocator
	Registry scaffold.Registry
	Confirm  scaffold.Confirmer
	Logger   logging.LeveledLogger
}

func DefaultOptions() Options {
	return Options{
		Version:        DefaultVersion,
		ToolkitVersion: scaffold.ToolkitVersion,
	}
}

func (o Options) WithDefaults() Options {
	def := DefaultOptions()

	if o.Version == "" {
		o.Version = def.Version
	}
	if o.ToolkitVersion == "" {
		o.ToolkitVersion = def.ToolkitVersion
	}
	if o.DestinationRoot == "" {
		if root, err := scaffold.DestinationRoot(); err == nil {
			o.DestinationRoot = root
		}
	}
	if o.Aux == nil {
		o.Aux = scaffold.DefaultAuxLocator(nil)
	}
	if o.Registry == nil {
		o.Registry = scaffold.NopRegistry{}
	}
	if o.Confirm == nil {
		o.Confirm = scaffold.Always(false)
	}
	if o.Logger == nil {
		o.Logger = scaffold.DiscardLogger()
	}

	return o
}
