// Package apify implements the scraping service boundary against an
// Apify-style REST API: start an actor run, poll run status, fetch the
// produced dataset.
package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rivalradar/rivalradar/config"
	"github.com/rivalradar/rivalradar/internal/core"
	"github.com/rivalradar/rivalradar/internal/domain/model"
	apperrors "github.com/rivalradar/rivalradar/internal/errors"
)

// Options configures the scrape client.
type Options struct {
	Config     config.ScraperConfig
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client talks to the remote scraping service. It is safe for concurrent use.
type Client struct {
	baseURL        string
	token          string
	http           *http.Client
	logger         *slog.Logger
	retryAttempts  int
	retryBaseDelay time.Duration
}

var _ core.ScrapeClient = (*Client)(nil)

// NewClient constructs a scrape client from configuration.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.Config.Token) == "" {
		return nil, errors.New("scraper token is required")
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Config.RequestTimeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:        strings.TrimRight(opts.Config.BaseURL, "/"),
		token:          opts.Config.Token,
		http:           hc,
		logger:         logger,
		retryAttempts:  opts.Config.RetryAttempts,
		retryBaseDelay: opts.Config.RetryBaseDelay,
	}, nil
}

// StartRun submits an actor run with the given start URLs and actor options.
// A non-success acknowledgement is a submission error carrying the remote
// status text; there is no retry at this layer beyond the transport backoff.
func (c *Client) StartRun(ctx context.Context, input core.StartRunInput) (string, error) {
	if input.Actor == "" {
		return "", apperrors.Validation("actor is required")
	}
	if len(input.StartURLs) == 0 {
		return "", apperrors.Validation("at least one start URL is required")
	}

	body := map[string]any{"startUrls": startURLList(input.StartURLs)}
	for k, v := range input.Options {
		body[k] = v
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode run input: %w", err)
	}

	endpoint := fmt.Sprintf("%s/acts/%s/runs", c.baseURL, url.PathEscape(input.Actor))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build start request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	defer closeBody(resp, c.logger)

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", apperrors.Submissionf("start run: %s", resp.Status)
	}

	var ack struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return "", fmt.Errorf("decode start response: %w", err)
	}
	if ack.Data.ID == "" {
		return "", apperrors.Submission("start run: response carried no run id")
	}

	c.logger.InfoContext(ctx, "scrape run started", "run_id", ack.Data.ID, "actor", input.Actor)
	return ack.Data.ID, nil
}

// RunStatus queries the current state of a run.
func (c *Client) RunStatus(ctx context.Context, runID string) (core.RunState, error) {
	endpoint := fmt.Sprintf("%s/actor-runs/%s", c.baseURL, url.PathEscape(runID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return core.RunState{}, fmt.Errorf("build status request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return core.RunState{}, err
	}
	defer closeBody(resp, c.logger)

	if resp.StatusCode != http.StatusOK {
		return core.RunState{}, fmt.Errorf("run status: %s", resp.Status)
	}

	var status struct {
		Data struct {
			Status           string `json:"status"`
			DefaultDatasetID string `json:"defaultDatasetId"`
		} `json:"data"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return core.RunState{}, fmt.Errorf("decode status response: %w", err)
	}

	return core.RunState{
		Status:    model.RunStatus(status.Data.Status),
		DatasetID: status.Data.DefaultDatasetID,
	}, nil
}

// DatasetItems fetches the ordered result items of a dataset. An empty
// dataset yields an empty slice, not an error.
func (c *Client) DatasetItems(ctx context.Context, datasetID string) ([]map[string]any, error) {
	endpoint := fmt.Sprintf("%s/datasets/%s/items", c.baseURL, url.PathEscape(datasetID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build dataset request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp, c.logger)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch dataset: %s", resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read dataset response: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return []map[string]any{}, nil
	}

	var items []map[string]any
	if err = json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode dataset items: %w", err)
	}
	if items == nil {
		items = []map[string]any{}
	}
	return items, nil
}

func startURLList(urls []string) []map[string]string {
	out := make([]map[string]string, 0, len(urls))
	for _, u := range urls {
		out = append(out, map[string]string{"url": u})
	}
	return out
}

func closeBody(resp *http.Response, logger *slog.Logger) {
	if err := resp.Body.Close(); err != nil && logger != nil {
		logger.Warn("close response body", "error", err)
	}
}

// NormalizeStartURL validates a target descriptor, prepending https:// when
// the scheme is absent.
func NormalizeStartURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", apperrors.Validation("target URL is required")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", apperrors.Validationf("invalid target URL: %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", apperrors.Validationf("unsupported URL scheme: %q", u.Scheme)
	}
	return u.String(), nil
}
