// Package slack delivers analysis failure notifications to a Slack webhook.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rivalradar/rivalradar/internal/observability/notify"
)

// Config captures the subset of Slack webhook behaviour we need.
type Config struct {
	WebhookURL      string
	Channel         string
	Username        string
	Timeout         time.Duration
	RetryLimit      int
	Client          *http.Client
	ReportURLPrefix string
}

// Client posts failure notifications to a Slack incoming webhook.
type Client struct {
	webhookURL      string
	channel         string
	username        string
	retryLimit      int
	reportURLPrefix string
	client          *http.Client
}

var _ notify.Sink = (*Client)(nil)

// NewClient builds a Slack webhook client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	webhookURL := strings.TrimSpace(cfg.WebhookURL)
	if webhookURL == "" {
		return nil, errors.New("slack webhook url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	retries := cfg.RetryLimit
	if retries < 0 {
		retries = 0
	}
	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	username := strings.TrimSpace(cfg.Username)
	if username == "" {
		username = "rivalradar"
	}

	return &Client{
		webhookURL:      webhookURL,
		channel:         strings.TrimSpace(cfg.Channel),
		username:        username,
		retryLimit:      retries,
		reportURLPrefix: strings.TrimSpace(cfg.ReportURLPrefix),
		client:          hc,
	}, nil
}

// SendAnalysisFailure posts a formatted message to Slack.
func (c *Client) SendAnalysisFailure(ctx context.Context, payload notify.AnalysisFailurePayload) error {
	body, err := json.Marshal(c.formatMessage(payload))
	if err != nil {
		return fmt.Errorf("encode slack payload: %w", err)
	}

	attempts := c.retryLimit + 1
	var lastErr error
	for attempt := range attempts {
		err = c.post(ctx, body)
		if err == nil {
			return nil
		}
		lastErr = err
		if attempt < attempts-1 {
			// Simple linear backoff to avoid thundering retries.
			delay := time.Duration(attempt+1) * 200 * time.Millisecond
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				if !timer.Stop() {
					<-timer.C
				}
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	return lastErr
}

func (c *Client) formatMessage(payload notify.AnalysisFailurePayload) map[string]any {
	timestamp := payload.OccurredAt
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	var text strings.Builder
	text.WriteString("*Analysis failure*")
	if payload.Kind != "" {
		text.WriteString(" (")
		text.WriteString(payload.Kind)
		text.WriteByte(')')
	}
	text.WriteByte('\n')

	appendField(&text, "Report", c.formatReportValue(payload.ReportID))
	appendField(&text, "Target", escapeSlackText(payload.TargetURL))
	appendField(&text, "Error class", payload.ErrorClass)
	appendField(&text, "Error", escapeSlackText(payload.Error))
	appendField(&text, "At", timestamp.UTC().Format(time.RFC3339))

	msg := map[string]any{
		"text":     text.String(),
		"username": c.username,
	}
	if c.channel != "" {
		msg["channel"] = c.channel
	}
	return msg
}

func (c *Client) formatReportValue(reportID string) string {
	id := strings.TrimSpace(reportID)
	if id == "" {
		return ""
	}
	if link := c.buildReportLink(id); link != "" {
		return fmt.Sprintf("<%s|%s>", link, escapeSlackText(id))
	}
	return escapeSlackText(id)
}

func (c *Client) buildReportLink(reportID string) string {
	if c.reportURLPrefix == "" {
		return ""
	}
	u, err := url.Parse(c.reportURLPrefix)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	link, err := url.JoinPath(u.String(), reportID)
	if err != nil {
		return ""
	}
	return link
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("slack request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("slack webhook returned %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func appendField(text *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	text.WriteString("• *")
	text.WriteString(label)
	text.WriteString("*: ")
	text.WriteString(value)
	text.WriteByte('\n')
}

func escapeSlackText(value string) string {
	if value == "" {
		return ""
	}
	return strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	).Replace(value)
}
