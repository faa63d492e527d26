package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	assert.Equal(t, 5*time.Second, cfg.NATS.Timeout())
	assert.Equal(t, 10*time.Second, cfg.Device.DiscoveryTimeout())
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 9090, cfg.Metrics.Port)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"nats": {"url": "nats://broker:4222", "timeout_seconds": 2},
		"device": {"topic_root": "devices.rig7.123", "discovery_timeout_seconds": 3},
		"metrics": {"enabled": false},
		"log_level": "debug"
	}`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "nats://broker:4222", cfg.NATS.URL)
	assert.Equal(t, 2*time.Second, cfg.NATS.Timeout())
	assert.Equal(t, "devices.rig7.123", cfg.Device.TopicRoot)
	assert.Equal(t, 3*time.Second, cfg.Device.DiscoveryTimeout())
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DEVICELINK_NATS_URL", "nats://env:4222")
	t.Setenv("DEVICELINK_DEVICE_ROOT", "devices.env.1")
	t.Setenv("DEVICELINK_METRICS_PORT", "9999")
	t.Setenv("DEVICELINK_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "nats://env:4222", cfg.NATS.URL)
	assert.Equal(t, "devices.env.1", cfg.Device.TopicRoot)
	assert.Equal(t, 9999, cfg.Metrics.Port)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) { c.Device.TopicRoot = "devices.x.1" }, false},
		{"missing nats url", func(c *Config) { c.Device.TopicRoot = "x"; c.NATS.URL = "" }, true},
		{"missing topic root", func(_ *Config) {}, true},
		{"bad metrics port", func(c *Config) { c.Device.TopicRoot = "x"; c.Metrics.Port = 0 }, true},
		{"bad log level", func(c *Config) { c.Device.TopicRoot = "x"; c.LogLevel = "verbose" }, true},
		{"metrics disabled ignores port", func(c *Config) {
			c.Device.TopicRoot = "x"
			c.Metrics.Enabled = false
			c.Metrics.Port = 0
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
