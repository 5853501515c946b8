package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL             = "https://ec.europa.eu/eurostat/api/dissemination/statistics/1.0/data"
	DefaultAPITimeout          = 30 * time.Second
	DefaultLanguage            = "EN"
	DefaultGeo                 = "FR"
	DefaultRefreshInterval     = 6 * time.Hour
	DefaultBatchPolicy         = "all_or_nothing"
	DefaultRealtimeInterval    = 1 * time.Second
	DefaultAssumedInterestRate = 0.028
	DefaultPopulation          = 68_000_000
	DefaultLocale              = "fr-FR"
	DefaultServerPort          = 8080
	DefaultReadTimeout         = 15 * time.Second
	DefaultWriteTimeout        = 15 * time.Second
	DefaultShutdownTimeout     = 10 * time.Second
	DefaultMetricsPath         = "/metrics"
	DefaultLogLevel            = "info"
	DefaultLogFormat           = "text"
)

func (c *Config) applyDefaults() {
	// API defaults
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.Language == "" {
		c.API.Language = DefaultLanguage
	}

	// Country defaults
	if c.Country.Geo == "" {
		c.Country.Geo = DefaultGeo
	}
	if c.Country.Code == "" {
		c.Country.Code = c.Country.Geo
	}

	// Pipeline defaults
	if c.Pipeline.RefreshInterval == 0 {
		c.Pipeline.RefreshInterval = DefaultRefreshInterval
	}
	if c.Pipeline.BatchPolicy == "" {
		c.Pipeline.BatchPolicy = DefaultBatchPolicy
	}

	// Realtime defaults
	if c.Realtime.Interval == 0 {
		c.Realtime.Interval = DefaultRealtimeInterval
	}

	// Derived defaults
	if c.Derived.AssumedInterestRate == 0 {
		c.Derived.AssumedInterestRate = DefaultAssumedInterestRate
	}
	if c.Derived.DefaultPopulation == 0 {
		c.Derived.DefaultPopulation = DefaultPopulation
	}

	// Export defaults
	if c.Export.Locale == "" {
		c.Export.Locale = DefaultLocale
	}

	// Server defaults
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerPort
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	// Metrics defaults
	if c.Metrics.Enabled == nil {
		enabled := true
		c.Metrics.Enabled = &enabled
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}

	// Logging defaults
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
}

// MetricsEnabled reports whether /metrics is served.
func (c *Config) MetricsEnabled() bool {
	return c.Metrics.Enabled == nil || *c.Metrics.Enabled
}
