// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package removeclass

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pion/logging"
	"github.com/pion/scaffold/internal/cmakelists"
	"github.com/pion/scaffold/internal/scaffold"
)

const (
	libraryDirective  = "elements_add_library"
	unitTestDirective = "elements_add_unit_test"
)

// Class names may be namespaced with '/' as in Sub/MyClass.
var classNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(/[A-Za-z_][A-Za-z0-9_]*)*$`)

// Run removes the class described by opts from its module.
func Run(ctx context.Context, opts Options) error {
	opts = opts.WithDefaults()
	if opts.ClassName == "" {
		return errMissingClass
	}

	r := &remover{opts: opts, log: opts.Logger}
	op := scaffold.NewOperation("remove-cpp-class", r.log)

	return op.Run(ctx,
		scaffold.Step{Stage: scaffold.StageValidating, Run: r.validate},
		scaffold.Step{Stage: scaffold.StageValidating, Run: r.ifFiles(r.confirm)},
		scaffold.Step{Stage: scaffold.StageMutatingDescriptor, Run: r.ifFiles(r.mutate)},
		scaffold.Step{Stage: scaffold.StageWriting, Run: r.ifFiles(r.write)},
	)
}

type remover struct {
	opts Options
	log  logging.LeveledLogger

	module *scaffold.Module
	files  []string
}

// CandidateFiles lists the header, source and unit test paths of class in
// module, whether they exist or not.
func CandidateFiles(module *scaffold.Module, class string) []string {
	rel := filepath.FromSlash(class)

	return []string{
		filepath.Join(module.Dir, module.Name, rel+".h"),
		filepath.Join(module.Dir, "src", "lib", rel+".cpp"),
		filepath.Join(module.Dir, "tests", "src", rel+"_test.cpp"),
	}
}

func (r *remover) ifFiles(fn func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		if len(r.files) == 0 {
			return nil
		}

		return fn(ctx)
	}
}

func (r *remover) validate(context.Context) error {
	if !classNamePattern.MatchString(r.opts.ClassName) {
		return fmt.Errorf("%w: %w: <%s>", scaffold.ErrValidation, errClassName, r.opts.ClassName)
	}

	module, err := scaffold.LoadModule(r.opts.ModuleDir)
	if err != nil {
		return err
	}
	r.module = module
	r.log.Infof("# Current module name : <%s>", module.Name)

	for _, path := range CandidateFiles(module, r.opts.ClassName) {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		r.files = append(r.files, path)
	}
	if len(r.files) == 0 {
		r.log.Info("No file found for deletion!")

		return nil
	}

	return scaffold.CheckWritable(module.CMakeLists)
}

func (r *remover) confirm(context.Context) error {
	for _, path := range r.files {
		r.log.Infof("File to be deleted: %s", path)
	}

	ok, err := r.opts.Confirm.Confirm("Do you want to continue?")
	if err != nil {
		return fmt.Errorf("remove-cpp-class: confirm: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: class <%s> kept", scaffold.ErrCancelled, r.opts.ClassName)
	}

	return nil
}

func (r *remover) mutate(context.Context) error {
	desc := r.module.Descriptor
	source := "src/lib/" + r.opts.ClassName + ".cpp"

	if n := desc.RemoveArgument(libraryDirective, source); n > 0 {
		r.log.Debugf("# <%s> removed from %s", source, libraryDirective)
	}
	n := desc.Delete(unitTestDirective, func(d *cmakelists.Directive) bool {
		return len(d.Args) > 0 && d.Args[0] == r.opts.ClassName
	})
	if n > 0 {
		r.log.Debugf("# %d %s directive(s) removed", n, unitTestDirective)
	}

	return nil
}

func (r *remover) write(context.Context) (err error) {
	cp, err := scaffold.Acquire(r.module.CMakeLists)
	if err != nil {
		return err
	}
	defer func() {
		if err == nil {
			if commitErr := cp.Commit(); commitErr != nil {
				r.log.Warnf("# %v", commitErr)
			}

			return
		}
		if rbErr := cp.Rollback(); rbErr != nil {
			r.log.Errorf("# %v", rbErr)
		}
	}()

	var errs []error
	for _, path := range r.files {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)

			continue
		}
		r.log.Infof("File deleted: %s", path)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("remove-cpp-class: %w", err)
	}

	r.log.Infof("Updating the <%s> file", scaffold.CMakeListsFile)
	if err := cp.Write([]byte(r.module.Descriptor.String())); err != nil {
		return err
	}
	r.warnDependencies()

	return nil
}

func (r *remover) warnDependencies() {
	macros := strings.Join([]string{
		libraryDirective, "elements_add_executable", "find_package", "elements_depends_on_subdirs",
	}, ", ")
	r.log.Warn("# !!!!!!!!!!!!!!!!!!")
	r.log.Warnf("# If your <%s> class has some Elements and/or external dependencies,", r.opts.ClassName)
	r.log.Warnf("# you may need to remove them. Check the <%s> macros in the file:", macros)
	r.log.Warnf("# < %s >", r.module.CMakeLists)
	r.log.Warn("# !!!!!!!!!!!!!!!!!!")
}
