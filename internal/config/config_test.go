package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/householdservices/portal/internal/config"
	"github.com/householdservices/portal/pkg/logging"
)

const baseConfig = `shutdown_timeout = "20s"

[server]
host = "127.0.0.1"
port = 8080
max_header_size = "64KB"

[logging]
level = "info"
format = "json"

[web]
title = "Household Services"
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoad_BaseConfig(t *testing.T) {
	t.Setenv(config.EnvServiceEnv, "")
	dir := t.TempDir()
	writeFile(t, dir, config.BaseConfigFile, baseConfig)

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Logging.Format != logging.FormatJSON {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, logging.FormatJSON)
	}
}

func TestLoad_WithOverlay(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.BaseConfigFile, baseConfig)
	writeFile(t, dir, "config.test.toml", `shutdown_timeout = "60s"

[server]
port = 9090

[web]
base_path = "/portal"
`)
	t.Setenv(config.EnvServiceEnv, "test")

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d (overlay)", cfg.Server.Port, 9090)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want %q (base)", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.ShutdownTimeout != "60s" {
		t.Errorf("ShutdownTimeout = %q, want %q", cfg.ShutdownTimeout, "60s")
	}
	if cfg.Web.BasePath != "/portal" {
		t.Errorf("Web.BasePath = %q, want %q", cfg.Web.BasePath, "/portal")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := config.Load(t.TempDir()); err == nil {
		t.Error("Load() succeeded without config file, want error")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.BaseConfigFile, "[server\nport = ")

	if _, err := config.Load(dir); err == nil {
		t.Error("Load() succeeded with invalid TOML, want error")
	}
}

func TestFinalize_Defaults(t *testing.T) {
	cfg := &config.Config{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("ShutdownTimeoutDuration() = %v, want 30s", cfg.ShutdownTimeoutDuration())
	}
	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("Server.Addr() = %q, want %q", cfg.Server.Addr(), "0.0.0.0:8080")
	}
	if cfg.Server.MaxHeaderBytes() != 1000*1000 {
		t.Errorf("Server.MaxHeaderBytes() = %d, want %d", cfg.Server.MaxHeaderBytes(), 1000*1000)
	}
	if cfg.Logging.Level != logging.LevelInfo {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, logging.LevelInfo)
	}
	if cfg.Web.Title != "Household Services" {
		t.Errorf("Web.Title = %q", cfg.Web.Title)
	}
	if !cfg.Metrics.IsEnabled() || cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics = %+v, want enabled at /metrics", cfg.Metrics)
	}
	if cfg.Tracing.Enabled {
		t.Error("Tracing.Enabled = true, want false by default")
	}
	if cfg.Tracing.TimeoutDuration() != 10*time.Second {
		t.Errorf("Tracing.TimeoutDuration() = %v, want 10s", cfg.Tracing.TimeoutDuration())
	}
}

func TestFinalize_TracingEnv(t *testing.T) {
	t.Setenv(config.EnvTracingEnabled, "true")
	t.Setenv(config.EnvTracingEndpoint, "http://otel:4318")

	cfg := &config.Config{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if !cfg.Tracing.Enabled {
		t.Error("Tracing.Enabled = false, want true")
	}
	if cfg.Tracing.Endpoint != "http://otel:4318" {
		t.Errorf("Tracing.Endpoint = %q", cfg.Tracing.Endpoint)
	}
	if cfg.Tracing.ServiceName != "household-portal" {
		t.Errorf("Tracing.ServiceName = %q", cfg.Tracing.ServiceName)
	}
}

func TestFinalize_EnvOverrides(t *testing.T) {
	t.Setenv(config.EnvServiceShutdownTimeout, "5s")
	t.Setenv(config.EnvServerPort, "3000")
	t.Setenv(config.EnvServerMaxHeaderSize, "2MB")
	t.Setenv("LOGGING_LEVEL", "debug")
	t.Setenv(config.EnvWebBasePath, "/app/")
	t.Setenv(config.EnvMetricsEnabled, "false")

	cfg := &config.Config{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.ShutdownTimeoutDuration() != 5*time.Second {
		t.Errorf("ShutdownTimeoutDuration() = %v, want 5s", cfg.ShutdownTimeoutDuration())
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Server.MaxHeaderBytes() != 2*1000*1000 {
		t.Errorf("Server.MaxHeaderBytes() = %d, want %d", cfg.Server.MaxHeaderBytes(), 2*1000*1000)
	}
	if cfg.Logging.Level != logging.LevelDebug {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Web.BasePath != "/app" {
		t.Errorf("Web.BasePath = %q, want %q (trailing slash trimmed)", cfg.Web.BasePath, "/app")
	}
	if cfg.Metrics.IsEnabled() {
		t.Error("Metrics.IsEnabled() = true, want false")
	}
}

func TestFinalize_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"shutdown timeout", config.Config{ShutdownTimeout: "soon"}},
		{"port", config.Config{Server: config.ServerConfig{Port: 70000}}},
		{"read timeout", config.Config{Server: config.ServerConfig{ReadTimeout: "x"}}},
		{"header size", config.Config{Server: config.ServerConfig{MaxHeaderSize: "lots"}}},
		{"log level", config.Config{Logging: logging.Config{Level: "loud"}}},
		{"base path", config.Config{Web: config.WebConfig{BasePath: "app"}}},
		{"metrics path", config.Config{Metrics: config.MetricsConfig{Path: "metrics"}}},
		{"tracing endpoint", config.Config{Tracing: config.TracingConfig{Endpoint: "collector"}}},
		{"tracing timeout", config.Config{Tracing: config.TracingConfig{Timeout: "later"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(); err == nil {
				t.Error("Finalize() succeeded, want error")
			}
		})
	}
}

func TestServerConfig_Merge(t *testing.T) {
	base := &config.ServerConfig{
		Host:         "localhost",
		Port:         8080,
		ReadTimeout:  "30s",
		WriteTimeout: "30s",
	}

	base.Merge(&config.ServerConfig{Port: 9090, WriteTimeout: "60s"})

	if base.Host != "localhost" {
		t.Errorf("Host = %q, want %q (should not change)", base.Host, "localhost")
	}
	if base.Port != 9090 {
		t.Errorf("Port = %d, want %d (should merge)", base.Port, 9090)
	}
	if base.ReadTimeout != "30s" {
		t.Errorf("ReadTimeout = %q, want %q (should not change)", base.ReadTimeout, "30s")
	}
	if base.WriteTimeout != "60s" {
		t.Errorf("WriteTimeout = %q, want %q (should merge)", base.WriteTimeout, "60s")
	}
}

func TestMetricsConfig_MergeExplicitFalse(t *testing.T) {
	enabled, disabled := true, false
	base := &config.MetricsConfig{Enabled: &enabled}

	base.Merge(&config.MetricsConfig{})
	if !base.IsEnabled() {
		t.Error("unset overlay disabled metrics")
	}

	base.Merge(&config.MetricsConfig{Enabled: &disabled})
	if base.IsEnabled() {
		t.Error("explicit false overlay did not disable metrics")
	}
}
