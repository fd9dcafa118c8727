package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	// EnvMetricsEnabled overrides whether the Prometheus endpoint is served.
	EnvMetricsEnabled = "METRICS_ENABLED"

	// EnvMetricsPath overrides the Prometheus endpoint path.
	EnvMetricsPath = "METRICS_PATH"
)

// MetricsConfig contains Prometheus exposition settings.
type MetricsConfig struct {
	Enabled *bool  `toml:"enabled"`
	Path    string `toml:"path"`
}

// IsEnabled reports whether metrics are served. Unset means enabled.
func (c *MetricsConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Finalize applies defaults, loads environment overrides, and validates the metrics configuration.
func (c *MetricsConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that are set.
func (c *MetricsConfig) Merge(overlay *MetricsConfig) {
	if overlay.Enabled != nil {
		enabled := *overlay.Enabled
		c.Enabled = &enabled
	}
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
}

func (c *MetricsConfig) loadDefaults() {
	if c.Enabled == nil {
		enabled := true
		c.Enabled = &enabled
	}
	if c.Path == "" {
		c.Path = "/metrics"
	}
}

func (c *MetricsConfig) loadEnv() {
	if v := os.Getenv(EnvMetricsEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Enabled = &enabled
		}
	}
	if v := os.Getenv(EnvMetricsPath); v != "" {
		c.Path = v
	}
}

func (c *MetricsConfig) validate() error {
	if !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("path must begin with /: %q", c.Path)
	}
	return nil
}
