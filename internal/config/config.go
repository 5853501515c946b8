package config

import "time"

// Config is the root configuration for the debtwatch service.
//
// Leaf fields use split_words rather than explicit envconfig names so that an
// unprefixed variable such as PATH or PORT is never picked up.
type Config struct {
	API      APIConfig      `yaml:"api" envconfig:"API"`
	Country  CountryConfig  `yaml:"country" envconfig:"COUNTRY"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
	Realtime RealtimeConfig `yaml:"realtime" envconfig:"REALTIME"`
	Derived  DerivedConfig  `yaml:"derived" envconfig:"DERIVED"`
	Export   ExportConfig   `yaml:"export" envconfig:"EXPORT"`
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Metrics  MetricsConfig  `yaml:"metrics" envconfig:"METRICS"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
}

// APIConfig holds Eurostat API settings.
type APIConfig struct {
	BaseURL    string        `yaml:"base_url" split_words:"true"`
	Timeout    time.Duration `yaml:"timeout" split_words:"true"`
	Language   string        `yaml:"language" split_words:"true"`    // Label language (EN, FR, DE)
	MaxRetries int           `yaml:"max_retries" split_words:"true"` // 0 = one attempt per cycle
}

// CountryConfig selects the country the dashboard tracks.
type CountryConfig struct {
	Geo  string `yaml:"geo" split_words:"true"`  // Eurostat geo code
	Code string `yaml:"code" split_words:"true"` // Code in the EU comparison table
}

// PipelineConfig holds load cycle settings.
type PipelineConfig struct {
	RefreshInterval time.Duration `yaml:"refresh_interval" split_words:"true"`
	BatchPolicy     string        `yaml:"batch_policy" split_words:"true"` // all_or_nothing | per_dataset
}

// RealtimeConfig holds extrapolator settings.
type RealtimeConfig struct {
	Interval time.Duration `yaml:"interval" split_words:"true"`
}

// DerivedConfig holds the assumptions behind derived figures.
type DerivedConfig struct {
	AssumedInterestRate float64 `yaml:"assumed_interest_rate" split_words:"true"`
	DefaultPopulation   float64 `yaml:"default_population" split_words:"true"`
}

// ExportConfig holds tabular export settings.
type ExportConfig struct {
	Locale    string `yaml:"locale" split_words:"true"`
	BOMPrefix bool   `yaml:"bom_prefix" split_words:"true"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port" split_words:"true"`
	ReadTimeout     time.Duration `yaml:"read_timeout" split_words:"true"`
	WriteTimeout    time.Duration `yaml:"write_timeout" split_words:"true"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" split_words:"true"`
	AllowedOrigins  []string      `yaml:"allowed_origins" split_words:"true"` // WebSocket origins; empty = same host
}

// MetricsConfig holds Prometheus metrics settings.
type MetricsConfig struct {
	Enabled *bool  `yaml:"enabled" split_words:"true"`
	Path    string `yaml:"path" split_words:"true"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `yaml:"level" split_words:"true"`  // debug | info | warn | error
	Format string `yaml:"format" split_words:"true"` // text | json
}
