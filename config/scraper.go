package config

import "time"

// ScraperConfig contains configuration for the remote scraping service.
type ScraperConfig struct {
	// BaseURL is the scraping service API root.
	BaseURL string `env:"BASE_URL" envDefault:"https://api.apify.com/v2"`

	// Token is the bearer token used to authenticate with the scraping service.
	Token string `env:"TOKEN"`

	// PageActor is the actor used for single-page scrapes (site profile, SEO audit).
	PageActor string `env:"PAGE_ACTOR" envDefault:"apify~website-content-crawler"`

	// ProductActor is the actor used for product catalog scrapes.
	ProductActor string `env:"PRODUCT_ACTOR" envDefault:"apify~web-scraper"`

	// ProductPollInterval is the delay between status checks for product runs.
	ProductPollInterval time.Duration `env:"PRODUCT_POLL_INTERVAL" envDefault:"5s"`

	// ProductMaxAttempts bounds the poll loop for product runs.
	ProductMaxAttempts int `env:"PRODUCT_MAX_ATTEMPTS" envDefault:"30"`

	// PagePollInterval is the delay between status checks for page runs.
	PagePollInterval time.Duration `env:"PAGE_POLL_INTERVAL" envDefault:"20s"`

	// PageMaxAttempts bounds the poll loop for page runs.
	PageMaxAttempts int `env:"PAGE_MAX_ATTEMPTS" envDefault:"12"`

	// RetryAttempts is the transport-level retry budget for failed connections.
	RetryAttempts int `env:"RETRY_ATTEMPTS" envDefault:"3"`

	// RetryBaseDelay is the initial transport retry delay; it doubles per attempt.
	RetryBaseDelay time.Duration `env:"RETRY_BASE_DELAY" envDefault:"500ms"`

	// RequestTimeout bounds each individual HTTP call to the service.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
}

// Sanitize applies guardrails to scraper configuration values.
func (s *ScraperConfig) Sanitize() {
	if s.ProductPollInterval <= 0 {
		s.ProductPollInterval = 5 * time.Second
	}
	if s.ProductMaxAttempts < 1 {
		s.ProductMaxAttempts = 1
	}
	if s.PagePollInterval <= 0 {
		s.PagePollInterval = 20 * time.Second
	}
	if s.PageMaxAttempts < 1 {
		s.PageMaxAttempts = 1
	}
	if s.RetryAttempts < 1 {
		s.RetryAttempts = 1
	}
	if s.RetryBaseDelay <= 0 {
		s.RetryBaseDelay = 500 * time.Millisecond
	}
	if s.RequestTimeout <= 0 {
		s.RequestTimeout = 30 * time.Second
	}
}
