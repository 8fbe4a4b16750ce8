// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package project

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pion/logging"
	"github.com/pion/scaffold/internal/cmakelists"
	"github.com/pion/scaffold/internal/scaffold"
)

const elementsProjectDirective = "elements_project"

// Run creates the project described by opts.
func Run(ctx context.Context, opts Options) error {
	opts = opts.WithDefaults()
	if err := validateOptions(opts); err != nil {
		return err
	}

	c := &creator{opts: opts, log: opts.Logger}

	return c.run(ctx)
}

func validateOptions(opts Options) error {
	if opts.Name == "" {
		return errMissingName
	}
	if opts.DestinationRoot == "" {
		return errMissingDestination
	}

	return nil
}

// ProjectDir returns where the project lands: <root>/<name>/<version>, or
// <root>/<name> without a version directory.
func ProjectDir(opts Options) string {
	if opts.NoVersionDirectory {
		return filepath.Join(opts.DestinationRoot, opts.Name)
	}

	return filepath.Join(opts.DestinationRoot, opts.Name, opts.Version)
}

type creator struct {
	opts Options
	log  logging.LeveledLogger

	projectDir  string
	replace     bool
	depList     []scaffold.Dependency
	cmakeText   string
	docText     string
	copiedFiles []string
}

func (c *creator) run(ctx context.Context) error {
	c.projectDir = ProjectDir(c.opts)
	c.log.Infof("# Installation directory : %s", c.opts.DestinationRoot)

	op := scaffold.NewOperation("create-project", c.log)
	if err := op.Run(ctx,
		scaffold.Step{Stage: scaffold.StageValidating, Run: c.validate},
		scaffold.Step{Stage: scaffold.StageValidating, Run: c.checkExisting},
		scaffold.Step{Stage: scaffold.StagePreparingFiles, Run: func(context.Context) error { return c.prepare(op) }},
		scaffold.Step{Stage: scaffold.StageMutatingDescriptor, Run: c.render},
		scaffold.Step{Stage: scaffold.StageWriting, Run: c.write},
	); err != nil {
		return err
	}

	c.log.Infof("# <%s> project successfully created.", c.projectDir)

	return nil
}

func (c *creator) validate(context.Context) error {
	validator := scaffold.NewValidator(c.opts.Registry, c.log)
	if !validator.IsValidName(scaffold.KindProject, c.opts.Name, c.opts.Version) {
		return fmt.Errorf("%w: project <%s> version <%s>", scaffold.ErrValidation, c.opts.Name, c.opts.Version)
	}
	if err := validator.ValidateDependencies(c.opts.Dependencies); err != nil {
		return err
	}

	for _, name := range []string{auxCMakeListsIn, auxMakefileIn, auxProjectDocIn} {
		where, err := c.opts.Aux.Locate(name)
		if err != nil {
			return err
		}
		c.log.Debugf("# Auxiliary file <%s> found at %s", name, where)
	}

	toolkit, err := scaffold.FormatToolkitVersion(c.opts.ToolkitVersion)
	if err != nil {
		return err
	}
	c.log.Infof("# Elements version found : <%s>", toolkit)
	c.depList = c.dependencyList(toolkit)

	return scaffold.CheckWritable(c.projectDir)
}

// dependencyList always starts with the toolkit itself. A user dependency
// whose name is already listed is skipped.
func (c *creator) dependencyList(toolkit string) []scaffold.Dependency {
	list := []scaffold.Dependency{{Name: scaffold.ToolkitName, Version: toolkit}}
	for _, dep := range c.opts.Dependencies {
		if containsDependency(list, dep.Name) {
			c.log.Warnf("<%s> dependency already exists. It is skipped!", dep.Name)

			continue
		}
		list = append(list, dep)
	}

	return list
}

func containsDependency(list []scaffold.Dependency, name string) bool {
	for _, dep := range list {
		if dep.Name == name {
			return true
		}
	}

	return false
}

func (c *creator) checkExisting(context.Context) error {
	if !scaffold.Exists(c.projectDir) {
		return nil
	}

	c.log.Warnf("<%s> Project ALREADY exists!!!", c.projectDir)
	ok, err := c.opts.Confirm.Confirm("Do you want to replace the existing project and associated module(s)?")
	if err != nil {
		return fmt.Errorf("create-project: confirm: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: project <%s>", scaffold.ErrCollision, c.projectDir)
	}

	c.log.Infof("# Replacing the existing project: <%s>", c.projectDir)
	c.replace = true

	return nil
}

func (c *creator) prepare(op *scaffold.Operation) error {
	c.log.Info("# Creating the project")

	if c.replace {
		if err := os.RemoveAll(c.projectDir); err != nil {
			return fmt.Errorf("create-project: erase %s: %w", c.projectDir, err)
		}
	}

	created := firstMissing(c.projectDir)
	docDir := filepath.Join(c.projectDir, docDirName)
	if err := os.MkdirAll(docDir, 0o750); err != nil {
		return fmt.Errorf("create-project: create %s: %w", docDir, err)
	}
	if created != "" {
		op.OnFailure(func() error { return os.RemoveAll(created) })
	}

	copies := []struct{ dir, name string }{
		{c.projectDir, auxCMakeListsIn},
		{c.projectDir, auxMakefileIn},
		{docDir, auxProjectDocIn},
	}
	for _, cp := range copies {
		path, err := c.opts.Aux.CopyTo(cp.dir, cp.name)
		if err != nil {
			return err
		}
		c.copiedFiles = append(c.copiedFiles, path)
	}
	op.OnFailure(c.removeCopies)

	return nil
}

func (c *creator) removeCopies() error {
	var errs []error
	for _, path := range c.copiedFiles {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (c *creator) bindings() map[string]string {
	parts := make([]string, 0, len(c.depList))
	for _, dep := range c.depList {
		parts = append(parts, dep.String())
	}

	return map[string]string{
		"PROJECT_NAME":    c.opts.Name,
		"PROJECT_VERSION": c.opts.Version,
		"DEPENDANCE_LIST": strings.Join(parts, " "),
	}
}

func (c *creator) render(context.Context) error {
	bindings := c.bindings()
	c.log.Debugf("# Substitute variables in <%s> file", auxCMakeListsIn)

	data, err := os.ReadFile(filepath.Join(c.projectDir, auxCMakeListsIn))
	if err != nil {
		return fmt.Errorf("create-project: read template: %w", err)
	}
	text, err := scaffold.Render(string(data), bindings)
	if err != nil {
		return fmt.Errorf("%s: %w", auxCMakeListsIn, err)
	}

	desc, err := cmakelists.Parse(text)
	if err != nil {
		return fmt.Errorf("%s: %w", auxCMakeListsIn, err)
	}
	invocation := fmt.Sprintf("%s(%s %s USE %s)",
		elementsProjectDirective, c.opts.Name, c.opts.Version, bindings["DEPENDANCE_LIST"])
	if !declaresProject(desc.Find(elementsProjectDirective), c.opts.Name, c.opts.Version) {
		if err := desc.Set(elementsProjectDirective, invocation); err != nil {
			return err
		}
	}
	c.cmakeText = desc.String()

	doc, err := os.ReadFile(filepath.Join(c.projectDir, docDirName, auxProjectDocIn))
	if err != nil {
		return fmt.Errorf("create-project: read template: %w", err)
	}
	c.docText, err = scaffold.Render(string(doc), bindings)
	if err != nil {
		return fmt.Errorf("%s: %w", auxProjectDocIn, err)
	}

	return nil
}

// declaresProject accepts a template's own elements_project directive when
// it already names this project and version, so extra template arguments
// survive.
func declaresProject(dir *cmakelists.Directive, name, version string) bool {
	return dir != nil && len(dir.Args) >= 2 && dir.Args[0] == name && dir.Args[1] == version
}

func (c *creator) write(context.Context) error {
	makefileIn := filepath.Join(c.projectDir, auxMakefileIn)
	if err := os.Rename(makefileIn, filepath.Join(c.projectDir, scaffold.FinalName(auxMakefileIn))); err != nil {
		return fmt.Errorf("create-project: rename %s: %w", auxMakefileIn, err)
	}

	docIn := filepath.Join(c.projectDir, docDirName, auxProjectDocIn)
	if err := c.replaceTemplate(docIn, c.docText); err != nil {
		return err
	}

	cmakeIn := filepath.Join(c.projectDir, auxCMakeListsIn)

	return c.replaceTemplate(cmakeIn, c.cmakeText)
}

// replaceTemplate writes the rendered text under the final name and drops
// the .in copy.
func (c *creator) replaceTemplate(inPath, text string) error {
	final := scaffold.FinalName(inPath)
	if err := scaffold.WriteFileAtomic(final, []byte(text), 0o644); err != nil {
		return fmt.Errorf("create-project: write %s: %w", final, err)
	}
	if err := os.Remove(inPath); err != nil {
		return fmt.Errorf("create-project: remove %s: %w", inPath, err)
	}

	return nil
}

// firstMissing returns the outermost directory on the way to dir that does
// not exist yet, or "" when dir exists.
func firstMissing(dir string) string {
	missing := ""
	for cur := filepath.Clean(dir); !scaffold.Exists(cur); {
		missing = cur
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}

	return missing
}
