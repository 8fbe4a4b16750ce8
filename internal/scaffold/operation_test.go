// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package scaffold

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOperationRunsStagesInOrder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	op := NewOperation("create-project", newTestLogger(&buf))

	var seen []Stage
	record := func(ctx context.Context) error {
		seen = append(seen, op.Stage())

		return nil
	}

	err := op.Run(context.Background(),
		Step{Stage: StageValidating, Run: record},
		Step{Stage: StageValidating, Run: record},
		Step{Stage: StagePreparingFiles, Run: record},
		Step{Stage: StageMutatingDescriptor, Run: record},
		Step{Stage: StageWriting, Run: record},
	)
	require.NoError(t, err)
	require.Equal(t, []Stage{
		StageValidating, StageValidating, StagePreparingFiles, StageMutatingDescriptor, StageWriting,
	}, seen)
	require.Equal(t, StageDone, op.Stage())
	require.Contains(t, buf.String(), "create-project: writing -> done")
}

func TestOperationAbortRunsCleanups(t *testing.T) {
	t.Parallel()

	op := NewOperation("add-script", DiscardLogger())
	boom := errors.New("disk full")

	var undone []string
	err := op.Run(context.Background(),
		Step{Stage: StageValidating, Run: func(context.Context) error { return nil }},
		Step{Stage: StagePreparingFiles, Run: func(context.Context) error {
			op.OnFailure(func() error { undone = append(undone, "dir"); return nil })
			op.OnFailure(func() error { undone = append(undone, "file"); return errors.New("ignored") })

			return nil
		}},
		Step{Stage: StageWriting, Run: func(context.Context) error { return boom }},
	)

	require.ErrorIs(t, err, boom)
	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	require.Equal(t, StageWriting, stageErr.Stage)
	require.Equal(t, StageAborted, op.Stage())
	require.Equal(t, []string{"file", "dir"}, undone)
}

func TestOperationValidationFailureStopsEarly(t *testing.T) {
	t.Parallel()

	op := NewOperation("remove-cpp-class", DiscardLogger())
	ran := false
	err := op.Run(context.Background(),
		Step{Stage: StageValidating, Run: func(context.Context) error { return ErrCollision }},
		Step{Stage: StagePreparingFiles, Run: func(context.Context) error { ran = true; return nil }},
	)
	require.ErrorIs(t, err, ErrCollision)
	require.False(t, ran)
	require.Contains(t, err.Error(), "validating")
}

func TestOperationRejectsOutOfOrderSteps(t *testing.T) {
	t.Parallel()

	op := NewOperation("x", DiscardLogger())
	noop := func(context.Context) error { return nil }
	err := op.Run(context.Background(),
		Step{Stage: StageWriting, Run: noop},
		Step{Stage: StageValidating, Run: noop},
	)
	require.ErrorIs(t, err, errStageOrder)
}

func TestOperationHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	op := NewOperation("x", DiscardLogger())
	err := op.Run(ctx, Step{Stage: StageValidating, Run: func(context.Context) error { return nil }})
	require.ErrorIs(t, err, context.Canceled)
}
