package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL, got %q", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return errors.New("api.timeout must be >= 0")
	}
	// A load cycle makes exactly one attempt per dataset.
	if c.API.MaxRetries != 0 {
		return fmt.Errorf("api.max_retries must be 0, got %d", c.API.MaxRetries)
	}

	if len(c.Country.Geo) != 2 {
		return fmt.Errorf("country.geo must be a two-letter code, got %q", c.Country.Geo)
	}

	if c.Pipeline.RefreshInterval < 0 {
		return errors.New("pipeline.refresh_interval must be >= 0")
	}
	switch strings.ToLower(c.Pipeline.BatchPolicy) {
	case "all_or_nothing", "per_dataset":
	default:
		return fmt.Errorf("pipeline.batch_policy must be all_or_nothing or per_dataset, got %q", c.Pipeline.BatchPolicy)
	}

	if c.Realtime.Interval <= 0 {
		return errors.New("realtime.interval must be > 0")
	}

	if c.Derived.AssumedInterestRate <= 0 || c.Derived.AssumedInterestRate >= 1 {
		return fmt.Errorf("derived.assumed_interest_rate must be between 0 and 1, got %v", c.Derived.AssumedInterestRate)
	}
	if c.Derived.DefaultPopulation <= 0 {
		return errors.New("derived.default_population must be > 0")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with /, got %q", c.Metrics.Path)
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}

	return nil
}

// LogLevel parses logging.level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}
