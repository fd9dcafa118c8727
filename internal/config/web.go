package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	// EnvWebBasePath overrides the URL prefix the application is mounted under.
	EnvWebBasePath = "WEB_BASE_PATH"

	// EnvWebTitle overrides the site title shown in the layout.
	EnvWebTitle = "WEB_TITLE"
)

// WebConfig contains settings for the page application.
type WebConfig struct {
	// BasePath is the URL prefix for every page route. Empty mounts at "/".
	BasePath string `toml:"base_path"`
	Title    string `toml:"title"`
}

// Finalize applies defaults, loads environment overrides, and validates the web configuration.
func (c *WebConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *WebConfig) Merge(overlay *WebConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
}

func (c *WebConfig) loadDefaults() {
	if c.Title == "" {
		c.Title = "Household Services"
	}
}

func (c *WebConfig) loadEnv() {
	if v := os.Getenv(EnvWebBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvWebTitle); v != "" {
		c.Title = v
	}
}

func (c *WebConfig) validate() error {
	c.BasePath = strings.TrimRight(c.BasePath, "/")
	if c.BasePath != "" && !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("base_path must begin with /: %q", c.BasePath)
	}
	return nil
}
