// Package notify defines the outbound boundary for analysis failure
// notifications.
package notify

import (
	"context"
	"time"
)

// AnalysisFailurePayload captures the canonical data emitted when an analysis
// ends in a failed report.
type AnalysisFailurePayload struct {
	ReportID   string
	Kind       string
	TargetURL  string
	Error      string
	ErrorClass string
	OccurredAt time.Time
}

// Sink describes a destination capable of consuming failure notifications.
type Sink interface {
	SendAnalysisFailure(ctx context.Context, payload AnalysisFailurePayload) error
}

// SinkFunc adapts a function to the Sink interface (useful for tests).
type SinkFunc func(ctx context.Context, payload AnalysisFailurePayload) error

// SendAnalysisFailure implements the Sink interface.
func (f SinkFunc) SendAnalysisFailure(ctx context.Context, payload AnalysisFailurePayload) error {
	if f == nil {
		return nil
	}
	return f(ctx, payload)
}
