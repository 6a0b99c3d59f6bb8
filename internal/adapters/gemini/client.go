// Package gemini implements the generative text boundary against a
// Gemini-style generateContent REST API. Responses are unstructured text; the
// extract package pulls structured payloads out of them downstream.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/rivalradar/rivalradar/config"
	"github.com/rivalradar/rivalradar/internal/core"
)

// Options configures the text generation client.
type Options struct {
	Config     config.AIConfig
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client sends prompts to the text generation service. Safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
	logger  *slog.Logger
}

var _ core.TextGenerator = (*Client)(nil)

// NewClient constructs a text generation client from configuration.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.Config.APIKey) == "" {
		return nil, errors.New("AI API key is required")
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
		baseURL: strings.TrimRight(opts.Config.BaseURL, "/"),
		apiKey:  opts.Config.APIKey,
		model:   opts.Config.Model,
		http:    hc,
		logger:  logger,
	}, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends a prompt and returns the model's free-text response with
// all candidate parts concatenated.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encode prompt: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("send generate request: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("close generate response body", "error", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generate content: %s", resp.Status)
	}

	var gr generateResponse
	if err = json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}
	if len(gr.Candidates) == 0 {
		return "", errors.New("generate content: response carried no candidates")
	}

	var sb strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("generate content: response carried no text")
	}
	return text, nil
}
