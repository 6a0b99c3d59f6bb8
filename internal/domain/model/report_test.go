package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportStatusForRun(t *testing.T) {
	t.Parallel()
	tests := []struct {
		run  RunStatus
		want ReportStatus
	}{
		{RunStatusReady, ReportStatusRunning},
		{RunStatusRunning, ReportStatusRunning},
		{RunStatusSucceeded, ReportStatusCompleted},
		{RunStatusFailed, ReportStatusFailed},
		{RunStatusTimedOut, ReportStatusFailed},
		{RunStatusAborted, ReportStatusFailed},
		{RunStatus("UNKNOWN"), ReportStatusRunning},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ReportStatusForRun(tt.run), "run status %s", tt.run)
	}
}

func TestRunStatusTerminal(t *testing.T) {
	t.Parallel()
	assert.False(t, RunStatusReady.Terminal())
	assert.False(t, RunStatusRunning.Terminal())
	assert.True(t, RunStatusSucceeded.Terminal())
	assert.True(t, RunStatusFailed.Terminal())
	assert.True(t, RunStatusTimedOut.Terminal())
	assert.True(t, RunStatusAborted.Terminal())
}

func TestNewReportIsRunningPlaceholder(t *testing.T) {
	t.Parallel()
	report := NewReport(ReportKindProducts, "https://shop.example")

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, ReportStatusRunning, report.Status)
	assert.Nil(t, report.CompletedAt)
	require.NoError(t, report.Validate())
}

func TestReportComplete(t *testing.T) {
	t.Parallel()
	report := NewReport(ReportKindProducts, "https://shop.example")

	require.Error(t, report.Complete(nil), "empty payload must be rejected")

	require.NoError(t, report.Complete(json.RawMessage(`{"products":[]}`)))
	assert.Equal(t, ReportStatusCompleted, report.Status)
	assert.NotNil(t, report.CompletedAt)
	require.NoError(t, report.Validate())
}

func TestReportFail(t *testing.T) {
	t.Parallel()
	report := NewReport(ReportKindSEOAudit, "https://example.com")

	report.Fail("run RUN-1 finished with status ABORTED")
	assert.Equal(t, ReportStatusFailed, report.Status)
	assert.NotNil(t, report.CompletedAt)
	require.NoError(t, report.Validate())

	// A failed record never loses its message.
	report.Fail("")
	assert.Equal(t, "analysis failed", report.Error)
}

func TestReportValidateInvariants(t *testing.T) {
	t.Parallel()

	completed := NewReport(ReportKindKeywords, "https://example.com")
	completed.Status = ReportStatusCompleted
	assert.Error(t, completed.Validate(), "completed requires payload")

	failed := NewReport(ReportKindKeywords, "https://example.com")
	failed.Status = ReportStatusFailed
	assert.Error(t, failed.Validate(), "failed requires an error message")

	badKind := NewReport(ReportKindKeywords, "https://example.com")
	badKind.Kind = "sentiment"
	assert.Error(t, badKind.Validate())
}

func TestReportKindUnmarshalText(t *testing.T) {
	t.Parallel()

	var kind ReportKind
	require.NoError(t, kind.UnmarshalText([]byte("  Products ")))
	assert.Equal(t, ReportKindProducts, kind)

	assert.Error(t, kind.UnmarshalText([]byte("sentiment")))
}

func TestStoreKeys(t *testing.T) {
	t.Parallel()
	report := NewReport(ReportKindComparison, "https://example.com")

	assert.Equal(t, "report:comparison:"+report.ID, report.StoreKey())
	assert.Equal(t, "report:comparison:", StoreKeyPrefix(ReportKindComparison))
}
