package classify

import (
	"log/slog"
	"time"
)

// Config holds classifier client configuration.
// Use functional options (WithXxx) to set these values.
type Config struct {
	BaseURL string

	// RegionPadding is added around the face box before scoring, in
	// pixels. The original pipeline used 10.
	RegionPadding int

	// Timeout bounds a single scoring request. There is deliberately no
	// retry: the worker simply tries again next cycle.
	Timeout time.Duration

	// Observability
	Logger *slog.Logger
}

// Option is a functional option for configuring the classifier client.
type Option func(*Config)

// WithBaseURL sets the scoring service URL.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithRegionPadding sets the padding applied around face regions.
func WithRegionPadding(px int) Option {
	return func(c *Config) {
		c.RegionPadding = px
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithLogger sets the structured logger for the client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() *Config {
	return &Config{
		RegionPadding: 10,
		Timeout:       10 * time.Second,
		Logger:        slog.Default(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrNoBaseURL
	}
	return nil
}
