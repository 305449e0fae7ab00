package app

import (
	"fmt"
	"strings"
)

// Config holds the settings an entrypoint passes to NewApp. Engine fields
// left empty (or zero) fall back to the configuration file, then defaults.
type Config struct {
	ConfigPath string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	Workers       int
	HandlerPolicy string
	Cancellation  string
	Codec         string
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	if cfg.HealthcheckPort < 0 {
		return nil, fmt.Errorf("invalid healthcheck-port %d", cfg.HealthcheckPort)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("invalid workers %d: must be positive", cfg.Workers)
	}
	return &cfg, nil
}
