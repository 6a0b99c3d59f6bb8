// Package core defines the port interfaces between the service layer and the
// adapters/data layers (hexagonal architecture). Services depend on these
// contracts, never on concrete implementations.
package core

import (
	"context"

	"github.com/rivalradar/rivalradar/internal/domain/model"
)

// ReportStore defines the key-value persistence boundary for reports.
// Keys are strings; values are JSON-serialized records.
type ReportStore interface {
	// Set stores a value under the given key, replacing any existing value.
	Set(ctx context.Context, key string, value []byte) error

	// Get retrieves a value by key. Returns ErrNotFound if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key. Returns true if the key existed.
	Delete(ctx context.Context, key string) (bool, error)

	// ListKeys returns all keys that begin with prefix, in unspecified order.
	ListKeys(ctx context.Context, prefix string) ([]string, error)

	// Health checks the health of the backing store.
	Health(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}

// StartRunInput describes one asynchronous scrape to submit.
type StartRunInput struct {
	// Actor is the remote extraction routine to run.
	Actor string
	// StartURLs are the normalized target URLs.
	StartURLs []string
	// Options carries operation-specific actor configuration.
	Options map[string]any
}

// RunState is one observation of a remote run's status.
type RunState struct {
	Status model.RunStatus
	// DatasetID identifies the produced dataset once the run succeeds.
	DatasetID string
}

// ScrapeClient defines the outbound boundary to the remote scraping service.
type ScrapeClient interface {
	// StartRun submits a run and returns the service-assigned run ID.
	StartRun(ctx context.Context, input StartRunInput) (string, error)

	// RunStatus queries the current state of a run.
	RunStatus(ctx context.Context, runID string) (RunState, error)

	// DatasetItems fetches the ordered result items of a dataset. An empty
	// dataset yields an empty slice, not an error.
	DatasetItems(ctx context.Context, datasetID string) ([]map[string]any, error)
}

// TextGenerator defines the outbound boundary to the generative text service.
type TextGenerator interface {
	// Generate sends a prompt and returns the model's free-text response.
	Generate(ctx context.Context, prompt string) (string, error)
}
