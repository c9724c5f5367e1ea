package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/inferloop/mlcanary/internal/api"
	"github.com/inferloop/mlcanary/internal/controller"
	obsmetrics "github.com/inferloop/mlcanary/internal/observability/metrics"
	"github.com/inferloop/mlcanary/internal/registry"
)

// Server hosts the prediction and admin API plus the metrics endpoint
type Server struct {
	httpServer    *http.Server
	metricsServer *http.Server
	logger        *logrus.Logger
	config        *Config
	controller    *controller.Controller
}

// NewServer wires the registry, controller and API into an HTTP server.
// It fails if the stable model cannot be loaded.
func NewServer(ctx context.Context, config *Config, version string, logger *logrus.Logger) (*Server, error) {
	if config == nil {
		config = NewDefaultConfig()
	}

	if logger == nil {
		logger = logrus.New()
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}

	registryOpts := []registry.Option{}
	if config.S3 != nil {
		s3Fetcher, err := registry.NewS3Fetcher(config.S3, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 fetcher: %w", err)
		}
		registryOpts = append(registryOpts, registry.WithS3Fetcher(s3Fetcher))
	}
	reg := registry.NewRegistry(logger, registryOpts...)

	var collectors *obsmetrics.Collectors
	if config.EnableMetrics {
		collectors = obsmetrics.NewCollectors("mlcanary")
	}

	ctrl, err := controller.New(ctx, &config.Controller, reg, collectors, logger)
	if err != nil {
		return nil, err
	}

	router := api.NewRouter(ctrl, version).SetupRoutes(logger)

	s := &Server{
		logger:     logger,
		config:     config,
		controller: ctrl,
		httpServer: &http.Server{
			Addr:         config.GetAddress(),
			Handler:      router,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
	}

	if config.EnableMetrics {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", collectors.Handler())
		s.metricsServer = &http.Server{
			Addr:         fmt.Sprintf("%s:%d", config.Host, config.MetricsPort),
			Handler:      metricsMux,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
		}
	}

	return s, nil
}

// Controller exposes the controller for tests and the CLI server command
func (s *Server) Controller() *controller.Controller {
	return s.controller
}

// Start starts the HTTP server and, when enabled, the metrics server
func (s *Server) Start(ctx context.Context) error {
	if s.metricsServer != nil {
		go func() {
			s.logger.WithField("address", s.metricsServer.Addr).Info("Starting metrics server")
			if err := s.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				s.logger.WithError(err).Error("Metrics server failed")
			}
		}()
	}

	s.logger.WithField("address", s.httpServer.Addr).Info("Starting HTTP server")
	return s.httpServer.ListenAndServe()
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			s.logger.WithError(err).Error("Error shutting down metrics server")
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.WithError(err).Error("Error shutting down HTTP server")
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}
