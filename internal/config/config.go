// Package config provides centralized configuration management for the
// gateway. Values resolve in three layers: built-in defaults, an optional
// YAML config file, and RANKGATE_* environment variables.
package config

import "time"

// Config represents the complete application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Analyzer AnalyzerConfig `mapstructure:"analyzer"`
	Billing  BillingConfig  `mapstructure:"billing"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StoreConfig contains database configuration for libsql/Turso. The
// default is an in-memory database; set a file path or Turso URL to
// persist accounts across restarts.
type StoreConfig struct {
	Driver    string `mapstructure:"driver"`
	Path      string `mapstructure:"path"`
	URL       string `mapstructure:"url"`
	AuthToken string `mapstructure:"auth_token"`
}

// CacheConfig contains result cache configuration.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// AnalyzerConfig bounds the external analysis collaborators.
type AnalyzerConfig struct {
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	AuditTimeout time.Duration `mapstructure:"audit_timeout"`
	RDAPEnabled  bool          `mapstructure:"rdap_enabled"`
}

// BillingConfig contains the billing event intake configuration. An
// empty webhook secret leaves provisioning unconfigured.
type BillingConfig struct {
	WebhookSecret string `mapstructure:"webhook_secret"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level controls the minimum log level.
	// Valid values: trace, debug, info, warn, error
	Level string `mapstructure:"level"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Port is the dedicated Prometheus exporter port. The JSON snapshot
	// stays on the main HTTP port.
	Port int `mapstructure:"port"`
}
