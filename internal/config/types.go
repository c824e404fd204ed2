// Package config provides configuration loading for the datacharts CLI and
// server. Precedence (highest to lowest): flags > env vars > config file >
// defaults.
package config

import (
	"fmt"
	"time"
)

// Defaults applied when no other source sets a key.
const (
	DefaultHost             = "127.0.0.1"
	DefaultPort             = 8080
	DefaultMaxExecutionTime = 30 * time.Second
	DefaultOutput           = "table"
	DefaultLogLevel         = "info"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LimitsConfig holds sandbox evaluation limits.
type LimitsConfig struct {
	// MaxExecutionTime is the per-evaluation wall-clock deadline.
	MaxExecutionTime time.Duration `koanf:"max_execution_time"`
}

// Config is the full application configuration.
type Config struct {
	Server ServerConfig `koanf:"server"`
	Limits LimitsConfig `koanf:"limits"`

	// Output is the CLI output format: table, json, or csv.
	Output string `koanf:"output"`
	// LogLevel is the slog level: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// Verbose forces debug logging regardless of LogLevel.
	Verbose bool `koanf:"verbose"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Limits.MaxExecutionTime <= 0 {
		c.Limits.MaxExecutionTime = DefaultMaxExecutionTime
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate checks field values after loading.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.Output {
	case "table", "json", "csv":
	default:
		return fmt.Errorf("invalid output format %q (want table, json, or csv)", c.Output)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return nil
}
