package server

import (
	"fmt"
	"time"

	"github.com/inferloop/mlcanary/internal/controller"
	"github.com/inferloop/mlcanary/internal/registry"
	"github.com/inferloop/mlcanary/internal/routing"
)

// Config contains the full server configuration
type Config struct {
	Host            string        `json:"host" yaml:"host"`
	Port            int           `json:"port" yaml:"port"`
	MetricsPort     int           `json:"metrics_port" yaml:"metrics_port"`
	ReadTimeout     time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout" yaml:"write_timeout"`
	IdleTimeout     time.Duration `json:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	EnableMetrics   bool          `json:"enable_metrics" yaml:"enable_metrics"`

	Controller controller.Config         `json:"controller" yaml:"controller"`
	S3         *registry.S3FetcherConfig `json:"s3,omitempty" yaml:"s3,omitempty"`
}

// NewDefaultConfig returns the default server configuration
func NewDefaultConfig() *Config {
	return &Config{
		Host:            "0.0.0.0",
		Port:            8000,
		MetricsPort:     9090,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		EnableMetrics:   true,
		Controller: controller.Config{
			StableModelPath: "models/model_v1.json",
			Routing: &routing.Config{
				MaxConcurrentInferences: 16,
			},
		},
	}
}

// Validate validates the server configuration
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	if c.EnableMetrics && (c.MetricsPort < 1 || c.MetricsPort > 65535) {
		return fmt.Errorf("invalid metrics port: %d", c.MetricsPort)
	}

	if c.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive")
	}

	if c.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive")
	}

	if c.Controller.StableModelPath == "" {
		return fmt.Errorf("stable model path is required")
	}

	return nil
}

// GetAddress returns the server listen address
func (c *Config) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
