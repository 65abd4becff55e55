// Package config defines the fog mock server configuration and its loader.
//
// Values are layered: defaults from New, then an optional YAML file named by
// FOG_CONFIG, then FOG_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// RoutePrefix is the path every mock endpoint is mounted under.
	RoutePrefix string `koanf:"route_prefix"`

	// ResponseLatencyMS is the fixed delay added to every mock response.
	ResponseLatencyMS int `koanf:"response_latency_ms"`

	// TimeZone names the IANA zone used to format create/update timestamps.
	TimeZone string `koanf:"time_zone"`

	// SeedFile optionally points at a YAML file replacing the built-in seed.
	SeedFile string `koanf:"seed_file"`

	// MaxRequestsPerSecond caps requests per client IP. Zero disables it.
	MaxRequestsPerSecond int `koanf:"max_requests_per_second"`

	// CORSAllowedOrigins lists origins allowed to call the mock from a browser.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		LogFormat:            "text",
		Addr:                 ":9080",
		RoutePrefix:          "/mock/fog",
		ResponseLatencyMS:    1000,
		TimeZone:             "Local",
		MaxRequestsPerSecond: 100,
		CORSAllowedOrigins:   []string{"*"},
	}
}

// ResponseLatency returns the configured latency as a duration.
func (c *Config) ResponseLatency() time.Duration {
	return time.Duration(c.ResponseLatencyMS) * time.Millisecond
}

// Location resolves TimeZone. "Local" and "" map to time.Local.
func (c *Config) Location() (*time.Location, error) {
	switch c.TimeZone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("%w: time_zone %q: %v", ErrInvalidConfig, c.TimeZone, err)
	}
	return loc, nil
}

// Validate checks invariants the server relies on.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.RoutePrefix != "" && !strings.HasPrefix(c.RoutePrefix, "/"):
		return fmt.Errorf("%w: route_prefix must start with /", ErrInvalidConfig)
	case c.ResponseLatencyMS < 0:
		return fmt.Errorf("%w: response_latency_ms must not be negative", ErrInvalidConfig)
	case c.MaxRequestsPerSecond < 0:
		return fmt.Errorf("%w: max_requests_per_second must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}
