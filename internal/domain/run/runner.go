// Package run provides the shared poll-until-complete capability for
// asynchronous remote runs. Every analysis is a thin configuration of one
// Spec: submit the run, poll status at a fixed interval up to an attempt
// budget, then fetch the result once the run reaches terminal success.
package run

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rivalradar/rivalradar/internal/core"
	"github.com/rivalradar/rivalradar/internal/domain/model"
	apperrors "github.com/rivalradar/rivalradar/internal/errors"
)

// FallbackPolicy names what a caller substitutes when a run fails. The policy
// is carried as explicit configuration so it is visible and testable
// independently of the transport code.
type FallbackPolicy string

const (
	// FallbackPropagate surfaces the failure to the caller unchanged.
	FallbackPropagate FallbackPolicy = "propagate"
	// FallbackMock substitutes deterministic sample data.
	FallbackMock FallbackPolicy = "substitute_mock"
	// FallbackRaw substitutes the raw, unprocessed input data.
	FallbackRaw FallbackPolicy = "substitute_raw"
)

// Spec parametrizes one remote asynchronous run.
type Spec[T any] struct {
	// Submit starts the remote run and returns its opaque run ID.
	Submit func(ctx context.Context) (string, error)

	// Status queries the run's current state.
	Status func(ctx context.Context, runID string) (core.RunState, error)

	// Fetch retrieves the result once terminal success is observed. It is
	// called at most once per run.
	Fetch func(ctx context.Context, state core.RunState) (T, error)

	// Interval is the fixed delay between status checks.
	Interval time.Duration

	// MaxAttempts bounds the poll loop; exhaustion while still running is a
	// poll timeout.
	MaxAttempts int

	// Logger is optional; nil falls back to slog.Default.
	Logger *slog.Logger

	// Wait overrides the inter-poll delay, used by tests. Nil uses a timer
	// honoring ctx cancellation.
	Wait func(ctx context.Context, d time.Duration) error
}

// Outcome is the discriminated result of a completed run.
type Outcome[T any] struct {
	RunID    string
	Status   model.RunStatus
	Attempts int
	Result   T
}

// Do runs one remote operation end to end: submit, poll to a terminal state,
// fetch. Submission errors pass through from Submit, an explicit failure
// terminal state yields a RemoteFailed error, and budget exhaustion yields a
// PollTimeout error. Cancelling ctx aborts at the next suspension point.
func Do[T any](ctx context.Context, spec Spec[T]) (Outcome[T], error) {
	var out Outcome[T]

	logger := spec.Logger
	if logger == nil {
		logger = slog.Default()
	}
	wait := spec.Wait
	if wait == nil {
		wait = sleep
	}

	runID, err := spec.Submit(ctx)
	if err != nil {
		return out, fmt.Errorf("submit run: %w", err)
	}
	out.RunID = runID
	logger.InfoContext(ctx, "run submitted", "run_id", runID, "max_attempts", spec.MaxAttempts)

	for attempt := 1; attempt <= spec.MaxAttempts; attempt++ {
		if err = wait(ctx, spec.Interval); err != nil {
			return out, err
		}

		state, serr := spec.Status(ctx, runID)
		if serr != nil {
			return out, fmt.Errorf("check run status: %w", serr)
		}
		out.Status = state.Status
		out.Attempts = attempt

		if !state.Status.Terminal() {
			logger.DebugContext(ctx, "run still in progress",
				"run_id", runID, "status", state.Status, "attempt", attempt)
			continue
		}

		if !state.Status.Succeeded() {
			return out, apperrors.RemoteFailedf("run %s finished with status %s", runID, state.Status)
		}

		result, ferr := spec.Fetch(ctx, state)
		if ferr != nil {
			return out, fmt.Errorf("fetch run result: %w", ferr)
		}
		out.Result = result
		logger.InfoContext(ctx, "run completed", "run_id", runID, "attempts", attempt)
		return out, nil
	}

	return out, apperrors.PollTimeoutf(
		"run %s did not complete after %d attempts", runID, spec.MaxAttempts)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
