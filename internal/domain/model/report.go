// Package model defines the core data types shared across the rivalradar analysis system.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RunStatus is the remote scraping service's vocabulary for a run's state.
// READY (still queued) and RUNNING are both treated as non-terminal.
type RunStatus string

const (
	// RunStatusReady indicates the run is queued but not yet executing.
	RunStatusReady RunStatus = "READY"
	// RunStatusRunning indicates the run is actively executing.
	RunStatusRunning RunStatus = "RUNNING"
	// RunStatusSucceeded indicates the run finished and produced a dataset.
	RunStatusSucceeded RunStatus = "SUCCEEDED"
	// RunStatusFailed indicates the run failed remotely.
	RunStatusFailed RunStatus = "FAILED"
	// RunStatusTimedOut indicates the remote service timed the run out.
	RunStatusTimedOut RunStatus = "TIMED-OUT"
	// RunStatusAborted indicates the run was aborted remotely.
	RunStatusAborted RunStatus = "ABORTED"
)

// Terminal returns true if no further status transition can occur.
func (s RunStatus) Terminal() bool {
	switch s {
	case RunStatusSucceeded, RunStatusFailed, RunStatusTimedOut, RunStatusAborted:
		return true
	default:
		return false
	}
}

// Succeeded returns true for the terminal success state.
func (s RunStatus) Succeeded() bool {
	return s == RunStatusSucceeded
}

// String returns the string representation of the run status.
func (s RunStatus) String() string {
	return string(s)
}

// ReportStatus is the persisted, externally visible vocabulary for a report's
// state. It is distinct from RunStatus: pages and API callers only ever see
// this one.
type ReportStatus string

const (
	// ReportStatusRunning marks a placeholder record written before the run finishes.
	ReportStatusRunning ReportStatus = "running"
	// ReportStatusCompleted marks a record with a populated payload.
	ReportStatusCompleted ReportStatus = "completed"
	// ReportStatusFailed marks a record carrying a human-readable error.
	ReportStatusFailed ReportStatus = "failed"
)

// Valid returns true if the ReportStatus is valid.
func (s ReportStatus) Valid() bool {
	return s == ReportStatusRunning || s == ReportStatusCompleted || s == ReportStatusFailed
}

// String returns the string representation of the report status.
func (s ReportStatus) String() string {
	return string(s)
}

// ReportStatusForRun maps the remote run vocabulary onto the persisted one.
// The mapping is deliberately explicit; call sites must not infer it.
func ReportStatusForRun(s RunStatus) ReportStatus {
	switch s {
	case RunStatusSucceeded:
		return ReportStatusCompleted
	case RunStatusFailed, RunStatusTimedOut, RunStatusAborted:
		return ReportStatusFailed
	case RunStatusReady, RunStatusRunning:
		return ReportStatusRunning
	default:
		return ReportStatusRunning
	}
}

// ReportKind identifies which analysis produced a report.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type ReportKind string

const (
	// ReportKindSiteProfile is a normalized landing-page metadata report.
	ReportKindSiteProfile ReportKind = "site_profile"
	// ReportKindProducts is a normalized product catalog report.
	ReportKindProducts ReportKind = "products"
	// ReportKindSEOAudit is a model-generated SEO issue report.
	ReportKindSEOAudit ReportKind = "seo_audit"
	// ReportKindKeywords is a model-generated keyword opportunity report.
	ReportKindKeywords ReportKind = "keywords"
	// ReportKindComparison is a multi-site comparison report.
	ReportKindComparison ReportKind = "comparison"
)

// Valid returns true if the ReportKind is valid.
func (k ReportKind) Valid() bool {
	switch k {
	case ReportKindSiteProfile, ReportKindProducts, ReportKindSEOAudit, ReportKindKeywords, ReportKindComparison:
		return true
	default:
		return false
	}
}

// String returns the string representation of the report kind.
func (k ReportKind) String() string {
	return string(k)
}

// UnmarshalText implements encoding.TextUnmarshaler for ReportKind to allow env and form parsing.
func (k *ReportKind) UnmarshalText(text []byte) error {
	v := ReportKind(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("invalid ReportKind: %q", string(text))
	}
	*k = v
	return nil
}

// Report is the persisted record for one analysis, keyed by ID in the report
// store. A running report is a placeholder that lets pages poll early; a
// completed report always carries a non-empty payload; a failed report always
// carries a non-empty Error.
type Report struct {
	ID          string          `json:"id"`
	Kind        ReportKind      `json:"kind"`
	TargetURL   string          `json:"target_url"`
	Competitors []string        `json:"competitors,omitempty"`
	Status      ReportStatus    `json:"status"`
	Error       string          `json:"error,omitempty"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// NewReport creates a running placeholder report for the given analysis.
func NewReport(kind ReportKind, targetURL string) *Report {
	return &Report{
		ID:        uuid.NewString(),
		Kind:      kind,
		TargetURL: targetURL,
		Status:    ReportStatusRunning,
		CreatedAt: time.Now().UTC(),
	}
}

// Complete marks the report completed with the given payload.
func (r *Report) Complete(payload json.RawMessage) error {
	if len(payload) == 0 {
		return errors.New("completed report requires a payload")
	}
	now := time.Now().UTC()
	r.Status = ReportStatusCompleted
	r.Payload = payload
	r.Error = ""
	r.CompletedAt = &now
	return nil
}

// Fail marks the report failed with a human-readable error message.
func (r *Report) Fail(msg string) {
	if msg == "" {
		msg = "analysis failed"
	}
	now := time.Now().UTC()
	r.Status = ReportStatusFailed
	r.Error = msg
	r.CompletedAt = &now
}

// Validate checks the report's structural invariants.
func (r *Report) Validate() error {
	if r.ID == "" {
		return errors.New("report id is required")
	}
	if !r.Kind.Valid() {
		return fmt.Errorf("invalid report kind: %q", r.Kind)
	}
	if r.TargetURL == "" {
		return errors.New("report target url is required")
	}
	if !r.Status.Valid() {
		return fmt.Errorf("invalid report status: %q", r.Status)
	}
	if r.Status == ReportStatusCompleted && len(r.Payload) == 0 {
		return errors.New("completed report requires a payload")
	}
	if r.Status == ReportStatusFailed && r.Error == "" {
		return errors.New("failed report requires an error message")
	}
	return nil
}

// StoreKey returns the report's key in the report store.
func (r *Report) StoreKey() string {
	return StoreKey(r.Kind, r.ID)
}

// StoreKey builds the report store key for a kind and id.
func StoreKey(kind ReportKind, id string) string {
	return "report:" + string(kind) + ":" + id
}

// StoreKeyPrefix returns the key prefix shared by all reports of a kind.
func StoreKeyPrefix(kind ReportKind) string {
	return "report:" + string(kind) + ":"
}
