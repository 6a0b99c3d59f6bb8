package config

import "strings"

// ObservabilityConfig groups configuration that controls metrics emission and
// failure notifications.
type ObservabilityConfig struct {
	Metrics ObservabilityMetricsConfig
	Slack   SlackNotifyConfig
}

// Sanitize applies guardrails to observability sub-configs.
func (c *ObservabilityConfig) Sanitize() {
	c.Metrics.Sanitize()
	c.Slack.Sanitize()
}

// ObservabilityMetricsConfig controls emission of metrics to external sinks such as StatsD.
type ObservabilityMetricsConfig struct {
	Enabled       bool   `env:"OBSERVABILITY_METRICS_ENABLED"        envDefault:"false"`
	StatsdAddress string `env:"OBSERVABILITY_METRICS_STATSD_ADDRESS" envDefault:"127.0.0.1:8125"`
}

// Sanitize normalises derived fields and enforces safe defaults.
func (c *ObservabilityMetricsConfig) Sanitize() {
	c.StatsdAddress = strings.TrimSpace(c.StatsdAddress)
	if c.StatsdAddress == "" {
		c.Enabled = false
	}
}

// IsEnabled returns true when metrics emission is active after sanitisation.
func (c *ObservabilityMetricsConfig) IsEnabled() bool {
	return c.Enabled && c.StatsdAddress != ""
}

// SlackNotifyConfig controls Slack webhook notifications for failed analyses.
// Notifications are disabled when no webhook URL is configured.
type SlackNotifyConfig struct {
	WebhookURL string `env:"SLACK_WEBHOOK_URL"`
	Channel    string `env:"SLACK_CHANNEL"`
	Username   string `env:"SLACK_USERNAME" envDefault:"rivalradar"`
}

// Sanitize normalises the Slack notification settings.
func (c *SlackNotifyConfig) Sanitize() {
	c.WebhookURL = strings.TrimSpace(c.WebhookURL)
	c.Channel = strings.TrimSpace(c.Channel)
	c.Username = strings.TrimSpace(c.Username)
}

// IsEnabled returns true when a webhook URL is configured.
func (c *SlackNotifyConfig) IsEnabled() bool {
	return c.WebhookURL != ""
}
