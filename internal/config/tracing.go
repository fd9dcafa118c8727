package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

const (
	// EnvTracingEnabled overrides whether OpenTelemetry tracing is exported.
	EnvTracingEnabled = "TRACING_ENABLED"

	// EnvTracingEndpoint overrides the OTLP/HTTP collector URL.
	EnvTracingEndpoint = "TRACING_ENDPOINT"

	// EnvTracingInsecure overrides whether the collector is reached over plain HTTP.
	EnvTracingInsecure = "TRACING_INSECURE"
)

// TracingConfig contains OpenTelemetry trace export settings.
type TracingConfig struct {
	Enabled     bool   `toml:"enabled"`
	Endpoint    string `toml:"endpoint"`
	Insecure    bool   `toml:"insecure"`
	ServiceName string `toml:"service_name"`
	Timeout     string `toml:"timeout"`
}

// TimeoutDuration parses and returns the export timeout as a time.Duration.
func (c *TracingConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the tracing configuration.
func (c *TracingConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *TracingConfig) Merge(overlay *TracingConfig) {
	if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.Endpoint != "" {
		c.Endpoint = overlay.Endpoint
	}
	if overlay.Insecure {
		c.Insecure = true
	}
	if overlay.ServiceName != "" {
		c.ServiceName = overlay.ServiceName
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *TracingConfig) loadDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "household-portal"
	}
	if c.Timeout == "" {
		c.Timeout = "10s"
	}
}

func (c *TracingConfig) loadEnv() {
	if v := os.Getenv(EnvTracingEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Enabled = enabled
		}
	}
	if v := os.Getenv(EnvTracingEndpoint); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv(EnvTracingInsecure); v != "" {
		if insecure, err := strconv.ParseBool(v); err == nil {
			c.Insecure = insecure
		}
	}
}

func (c *TracingConfig) validate() error {
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if c.Endpoint != "" {
		u, err := url.Parse(c.Endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid endpoint: %q", c.Endpoint)
		}
	}
	return nil
}
