package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	require.NoError(t, config.Validate())
	assert.Equal(t, "0.0.0.0:8000", config.GetAddress())
	assert.Equal(t, 9090, config.MetricsPort)
	assert.True(t, config.EnableMetrics)
	assert.Equal(t, "models/model_v1.json", config.Controller.StableModelPath)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"zero port", func(c *Config) { c.Port = 0 }, "invalid port"},
		{"port too large", func(c *Config) { c.Port = 70000 }, "invalid port"},
		{"bad metrics port", func(c *Config) { c.MetricsPort = -1 }, "invalid metrics port"},
		{"zero read timeout", func(c *Config) { c.ReadTimeout = 0 }, "read timeout"},
		{"zero write timeout", func(c *Config) { c.WriteTimeout = 0 }, "write timeout"},
		{"missing stable model", func(c *Config) { c.Controller.StableModelPath = "" }, "stable model path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := NewDefaultConfig()
			tt.mutate(config)

			err := config.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfigValidateMetricsDisabled(t *testing.T) {
	config := NewDefaultConfig()
	config.EnableMetrics = false
	config.MetricsPort = 0

	assert.NoError(t, config.Validate())
}
