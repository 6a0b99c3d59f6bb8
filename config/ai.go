package config

import "time"

// AIConfig contains configuration for the generative text service.
type AIConfig struct {
	// BaseURL is the text generation API root.
	BaseURL string `env:"BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`

	// APIKey authenticates requests to the text generation service.
	APIKey string `env:"API_KEY"`

	// Model is the model identifier used for generation requests.
	Model string `env:"MODEL" envDefault:"gemini-2.0-flash"`

	// RequestTimeout bounds each generation call.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`
}

// Sanitize applies guardrails to AI configuration values.
func (a *AIConfig) Sanitize() {
	if a.Model == "" {
		a.Model = "gemini-2.0-flash"
	}
	if a.RequestTimeout <= 0 {
		a.RequestTimeout = 60 * time.Second
	}
}
