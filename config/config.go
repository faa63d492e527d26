// Package config provides application configuration for devicelink:
// defaults, JSON file loading, environment overrides, and validation.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/c360/devicelink/errors"
)

// Environment variable overrides
const (
	envNATSURL     = "DEVICELINK_NATS_URL"
	envDeviceRoot  = "DEVICELINK_DEVICE_ROOT"
	envMetricsPort = "DEVICELINK_METRICS_PORT"
	envLogLevel    = "DEVICELINK_LOG_LEVEL"
)

// NATSConfig holds NATS connection settings
type NATSConfig struct {
	URL            string `json:"url"`
	Name           string `json:"name,omitempty"`
	Username       string `json:"username,omitempty"`
	Password       string `json:"password,omitempty"`
	Token          string `json:"token,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}

// Timeout returns the connection timeout as a duration
func (n NATSConfig) Timeout() time.Duration {
	if n.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(n.TimeoutSeconds) * time.Second
}

// DeviceConfig holds the remote device to materialize
type DeviceConfig struct {
	// TopicRoot is the device's subject prefix, e.g.
	// "devices.rig7.123456789"
	TopicRoot string `json:"topic_root"`

	// DiscoveryTimeoutSeconds bounds the topology request
	DiscoveryTimeoutSeconds int `json:"discovery_timeout_seconds,omitempty"`
}

// DiscoveryTimeout returns the discovery timeout as a duration
func (d DeviceConfig) DiscoveryTimeout() time.Duration {
	if d.DiscoveryTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(d.DiscoveryTimeoutSeconds) * time.Second
}

// MetricsConfig holds the metrics endpoint settings
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Port    int    `json:"port,omitempty"`
	Path    string `json:"path,omitempty"`
}

// Config represents the complete application configuration
type Config struct {
	NATS     NATSConfig    `json:"nats"`
	Device   DeviceConfig  `json:"device"`
	Metrics  MetricsConfig `json:"metrics"`
	LogLevel string        `json:"log_level,omitempty"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		NATS: NATSConfig{
			URL:  "nats://localhost:4222",
			Name: "devicelink",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Port:    9090,
			Path:    "/metrics",
		},
		LogLevel: "info",
	}
}

// Load reads configuration: defaults, then the optional JSON file, then
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapInvalid(err, "config", "Load", "read config file")
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapInvalid(err, "config", "Load", "parse config file")
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(envNATSURL); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv(envDeviceRoot); v != "" {
		cfg.Device.TopicRoot = v
	}
	if v := os.Getenv(envMetricsPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Metrics.Port = port
		}
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = v
	}
}

// Validate checks the configuration for required fields and sane values
func (c *Config) Validate() error {
	if c.NATS.URL == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig,
			"config", "Validate", "nats.url")
	}
	if c.Device.TopicRoot == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig,
			"config", "Validate", "device.topic_root")
	}
	if c.Metrics.Enabled && (c.Metrics.Port < 1 || c.Metrics.Port > 65535) {
		return errors.WrapInvalid(
			fmt.Errorf("invalid metrics port %d: %w", c.Metrics.Port, errors.ErrInvalidConfig),
			"config", "Validate", "metrics.port")
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.WrapInvalid(
			fmt.Errorf("invalid log level %q: %w", c.LogLevel, errors.ErrInvalidConfig),
			"config", "Validate", "log_level")
	}
	return nil
}
