package run

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivalradar/rivalradar/internal/core"
	"github.com/rivalradar/rivalradar/internal/domain/model"
	apperrors "github.com/rivalradar/rivalradar/internal/errors"
)

func noWait(context.Context, time.Duration) error { return nil }

// statusScript feeds a fixed status sequence, holding the last value.
func statusScript(statuses ...model.RunStatus) func(context.Context, string) (core.RunState, error) {
	i := 0
	return func(context.Context, string) (core.RunState, error) {
		s := statuses[min(i, len(statuses)-1)]
		i++
		return core.RunState{Status: s, DatasetID: "ds-1"}, nil
	}
}

func TestDoSucceedsAfterPolling(t *testing.T) {
	fetched := 0
	spec := Spec[string]{
		Submit: func(context.Context) (string, error) { return "run-1", nil },
		Status: statusScript(model.RunStatusRunning, model.RunStatusRunning, model.RunStatusSucceeded),
		Fetch: func(_ context.Context, state core.RunState) (string, error) {
			fetched++
			return "dataset:" + state.DatasetID, nil
		},
		Interval:    time.Millisecond,
		MaxAttempts: 5,
		Wait:        noWait,
	}

	out, err := Do(t.Context(), spec)
	require.NoError(t, err)
	assert.Equal(t, "run-1", out.RunID)
	assert.Equal(t, "dataset:ds-1", out.Result)
	assert.Equal(t, 3, out.Attempts)
	assert.Equal(t, model.RunStatusSucceeded, out.Status)
	assert.Equal(t, 1, fetched, "fetch must be called at most once")
}

func TestDoPollTimeout(t *testing.T) {
	spec := Spec[string]{
		Submit:      func(context.Context) (string, error) { return "run-2", nil },
		Status:      statusScript(model.RunStatusRunning),
		Fetch:       func(context.Context, core.RunState) (string, error) { return "", nil },
		Interval:    time.Millisecond,
		MaxAttempts: 5,
		Wait:        noWait,
	}

	_, err := Do(t.Context(), spec)
	require.Error(t, err)
	assert.True(t, apperrors.IsPollTimeout(err))
	assert.Contains(t, err.Error(), "did not complete")
	assert.Contains(t, err.Error(), "5 attempts")
}

func TestDoRemoteFailure(t *testing.T) {
	for _, status := range []model.RunStatus{model.RunStatusFailed, model.RunStatusTimedOut, model.RunStatusAborted} {
		t.Run(string(status), func(t *testing.T) {
			spec := Spec[string]{
				Submit:      func(context.Context) (string, error) { return "run-3", nil },
				Status:      statusScript(model.RunStatusRunning, status),
				Fetch:       func(context.Context, core.RunState) (string, error) { return "", nil },
				Interval:    time.Millisecond,
				MaxAttempts: 5,
				Wait:        noWait,
			}

			_, err := Do(t.Context(), spec)
			require.Error(t, err)
			assert.True(t, apperrors.IsRemoteFailed(err))
			assert.Contains(t, err.Error(), string(status))
		})
	}
}

func TestDoSubmitErrorPropagates(t *testing.T) {
	subErr := apperrors.Submission("start run: 403 Forbidden")
	spec := Spec[string]{
		Submit:      func(context.Context) (string, error) { return "", subErr },
		Interval:    time.Millisecond,
		MaxAttempts: 5,
		Wait:        noWait,
	}

	_, err := Do(t.Context(), spec)
	require.Error(t, err)
	assert.True(t, apperrors.IsSubmission(err))
}

func TestDoStatusErrorAborts(t *testing.T) {
	boom := errors.New("connection refused")
	spec := Spec[string]{
		Submit:      func(context.Context) (string, error) { return "run-4", nil },
		Status:      func(context.Context, string) (core.RunState, error) { return core.RunState{}, boom },
		Fetch:       func(context.Context, core.RunState) (string, error) { return "", nil },
		Interval:    time.Millisecond,
		MaxAttempts: 5,
		Wait:        noWait,
	}

	_, err := Do(t.Context(), spec)
	require.ErrorIs(t, err, boom)
}

func TestDoCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	spec := Spec[string]{
		Submit:      func(context.Context) (string, error) { return "run-5", nil },
		Status:      statusScript(model.RunStatusRunning),
		Fetch:       func(context.Context, core.RunState) (string, error) { return "", nil },
		Interval:    time.Minute,
		MaxAttempts: 5,
	}

	_, err := Do(ctx, spec)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDoEmptyDatasetIsNotAnError(t *testing.T) {
	spec := Spec[[]map[string]any]{
		Submit:      func(context.Context) (string, error) { return "run-6", nil },
		Status:      statusScript(model.RunStatusSucceeded),
		Fetch:       func(context.Context, core.RunState) ([]map[string]any, error) { return []map[string]any{}, nil },
		Interval:    time.Millisecond,
		MaxAttempts: 3,
		Wait:        noWait,
	}

	out, err := Do(t.Context(), spec)
	require.NoError(t, err)
	assert.Empty(t, out.Result)
}
