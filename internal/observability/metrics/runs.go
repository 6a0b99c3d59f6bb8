// Package metrics provides standardized metric emission for analysis runs.
package metrics

import (
	"time"

	obserrors "github.com/rivalradar/rivalradar/internal/observability/errors"
	"github.com/rivalradar/rivalradar/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// RunMetric captures details about one analysis run for metric emission.
type RunMetric struct {
	Kind     string
	Result   string
	Duration time.Duration
	Err      error
}

// EmitRunLifecycle emits standardized analysis lifecycle metrics.
func EmitRunLifecycle(sink statsd.Sink, in RunMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"kind":   in.Kind,
		"result": in.Result,
	}
	if in.Err != nil && in.Result != ResultSuccess {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("analysis.run", 1, tags)

	if in.Duration > 0 {
		sink.Timing("analysis.duration", in.Duration, cloneTags(tags))
	}
}

func cloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
