// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package scaffold

import (
	"context"
	"errors"
	"fmt"

	"github.com/pion/logging"
)

// Stage is a step of a scaffold operation.
type Stage int

const (
	StageInit Stage = iota
	StageValidating
	StagePreparingFiles
	StageMutatingDescriptor
	StageWriting
	StageDone
	StageAborted
)

func (s Stage) String() string {
	switch s {
	case StageInit:
		return "init"
	case StageValidating:
		return "validating"
	case StagePreparingFiles:
		return "preparing-files"
	case StageMutatingDescriptor:
		return "mutating-descriptor"
	case StageWriting:
		return "writing"
	case StageDone:
		return "done"
	case StageAborted:
		return "aborted"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// StageError records the stage an operation failed in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Step is one unit of work bound to a stage.
type Step struct {
	Stage Stage
	Run   func(ctx context.Context) error
}

var errStageOrder = errors.New("steps out of stage order")

// Operation drives steps through the stages in order. When a step after
// validation fails, the registered cleanups run newest first.
type Operation struct {
	name     string
	log      logging.LeveledLogger
	stage    Stage
	cleanups []func() error
}

func NewOperation(name string, log logging.LeveledLogger) *Operation {
	return &Operation{name: name, log: log, stage: StageInit}
}

func (o *Operation) Stage() Stage {
	return o.stage
}

// OnFailure registers fn to undo filesystem work if a later step fails.
func (o *Operation) OnFailure(fn func() error) {
	o.cleanups = append(o.cleanups, fn)
}

func (o *Operation) Run(ctx context.Context, steps ...Step) error {
	for _, step := range steps {
		if step.Stage < o.stage || step.Stage >= StageDone {
			return o.abort(&StageError{Stage: o.stage, Err: fmt.Errorf("%w: %s", errStageOrder, step.Stage)})
		}
		if step.Stage != o.stage {
			o.log.Debugf("%s: %s -> %s", o.name, o.stage, step.Stage)
			o.stage = step.Stage
		}
		if err := ctx.Err(); err != nil {
			return o.abort(&StageError{Stage: o.stage, Err: err})
		}
		if err := step.Run(ctx); err != nil {
			return o.abort(&StageError{Stage: o.stage, Err: err})
		}
	}

	o.log.Debugf("%s: %s -> %s", o.name, o.stage, StageDone)
	o.stage = StageDone
	o.cleanups = nil

	return nil
}

func (o *Operation) abort(err *StageError) error {
	o.log.Debugf("%s: %s -> %s", o.name, o.stage, StageAborted)
	o.stage = StageAborted

	for i := len(o.cleanups) - 1; i >= 0; i-- {
		if cleanErr := o.cleanups[i](); cleanErr != nil {
			o.log.Errorf("# cleanup after failure: %v", cleanErr)
		}
	}
	o.cleanups = nil

	return err
}
