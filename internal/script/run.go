// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pion/logging"
	"github.com/pion/scaffold/internal/scaffold"
)

const installScriptsDirective = "elements_install_scripts"

// Run adds the script described by opts to its module.
func Run(ctx context.Context, opts Options) error {
	opts = opts.WithDefaults()
	if opts.Name == "" {
		return errMissingName
	}

	a := &adder{opts: opts, log: opts.Logger}
	op := scaffold.NewOperation("add-script", a.log)
	if err := op.Run(ctx,
		scaffold.Step{Stage: scaffold.StageValidating, Run: a.validate},
		scaffold.Step{Stage: scaffold.StagePreparingFiles, Run: func(context.Context) error { return a.prepare(op) }},
		scaffold.Step{Stage: scaffold.StageMutatingDescriptor, Run: a.render},
		scaffold.Step{Stage: scaffold.StageWriting, Run: func(context.Context) error { return a.write(op) }},
	); err != nil {
		return err
	}

	a.log.Infof("# <%s> script successfully created in <%s>.", opts.Name, a.scriptsDir)

	return nil
}

type adder struct {
	opts Options
	log  logging.LeveledLogger

	module     *scaffold.Module
	scriptsDir string
	target     string
	copied     string
	scriptText string
}

func (a *adder) validate(context.Context) error {
	module, err := scaffold.LoadModule(a.opts.ModuleDir)
	if err != nil {
		return err
	}
	a.module = module
	a.log.Infof("# Current module name : <%s>", module.Name)

	validator := scaffold.NewValidator(a.opts.Registry, a.log)
	if !validator.IsValidName(scaffold.KindScript, a.opts.Name, nameCheckVersion) {
		return fmt.Errorf("%w: script <%s>", scaffold.ErrValidation, a.opts.Name)
	}

	if _, err := a.opts.Aux.Locate(auxScriptIn); err != nil {
		return err
	}

	a.scriptsDir = filepath.Join(module.Dir, ScriptsDir)
	a.target = filepath.Join(a.scriptsDir, a.opts.Name)
	if scaffold.Exists(a.target) {
		return fmt.Errorf("%w: script <%s> already exists", scaffold.ErrCollision, a.target)
	}

	if err := scaffold.CheckWritable(module.CMakeLists); err != nil {
		return err
	}

	return scaffold.CheckWritable(a.scriptsDir)
}

func (a *adder) prepare(op *scaffold.Operation) error {
	if !scaffold.Exists(a.scriptsDir) {
		if err := os.Mkdir(a.scriptsDir, 0o750); err != nil {
			return fmt.Errorf("add-script: create %s: %w", a.scriptsDir, err)
		}
		a.log.Debugf("# Directory created : <%s>", a.scriptsDir)
		op.OnFailure(func() error { return os.Remove(a.scriptsDir) })
	}

	copied, err := a.opts.Aux.CopyTo(a.scriptsDir, auxScriptIn)
	if err != nil {
		return err
	}
	a.copied = copied
	op.OnFailure(func() error {
		if err := os.Remove(copied); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}

		return nil
	})

	return nil
}

func (a *adder) render(context.Context) error {
	data, err := os.ReadFile(a.copied)
	if err != nil {
		return fmt.Errorf("add-script: read template: %w", err)
	}

	text, err := scaffold.Render(string(data), map[string]string{
		"FILE":        filepath.ToSlash(filepath.Join(ScriptsDir, a.opts.Name)),
		"DATE":        a.opts.Now().Format(dateLayout),
		"AUTHOR":      a.opts.Author,
		"PROGRAMNAME": a.opts.Name,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", auxScriptIn, err)
	}
	a.scriptText = text

	return a.module.Descriptor.Set(installScriptsDirective, installScriptsDirective+"()")
}

func (a *adder) write(op *scaffold.Operation) (err error) {
	cp, err := scaffold.Acquire(a.module.CMakeLists)
	if err != nil {
		return err
	}
	defer func() {
		if err == nil {
			if commitErr := cp.Commit(); commitErr != nil {
				a.log.Warnf("# %v", commitErr)
			}

			return
		}
		if rbErr := cp.Rollback(); rbErr != nil {
			a.log.Errorf("# %v", rbErr)
		}
	}()

	op.OnFailure(func() error {
		if err := os.Remove(a.target); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}

		return nil
	})
	if err := scaffold.WriteFileAtomic(a.target, []byte(a.scriptText), 0o755); err != nil {
		return fmt.Errorf("add-script: write %s: %w", a.target, err)
	}
	if err := os.Remove(a.copied); err != nil {
		return fmt.Errorf("add-script: remove %s: %w", a.copied, err)
	}

	a.log.Infof("# Updating <%s>", a.module.CMakeLists)

	return cp.Write([]byte(a.module.Descriptor.String()))
}
