package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inferloop/mlcanary/internal/registry"
	"github.com/inferloop/mlcanary/internal/routing"
	"github.com/inferloop/mlcanary/internal/server"
)

func main() {
	flags := ParseFlags()

	logger := setupLogger(flags.LogLevel, flags.LogFormat)

	logger.WithFields(logrus.Fields{
		"version":   Version,
		"commit":    GitCommit,
		"buildDate": BuildDate,
	}).Info("Starting Canary Model Serving Server")

	config := server.NewDefaultConfig()
	config.Host = flags.Host
	config.Port = flags.Port
	config.MetricsPort = flags.MetricsPort
	config.EnableMetrics = flags.EnableMetrics
	config.Controller.StableModelPath = flags.StableModel
	config.Controller.Routing = &routing.Config{
		MaxConcurrentInferences: flags.MaxInferences,
	}
	if flags.EnableS3 {
		config.S3 = &registry.S3FetcherConfig{
			Region:   flags.S3Region,
			Endpoint: flags.S3Endpoint,
			Timeout:  30 * time.Second,
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv, err := server.NewServer(ctx, config, Version, logger)
	if err != nil {
		logger.WithError(err).Fatal("Server initialization failed")
	}

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	<-sigChan
	logger.Info("Shutdown signal received")

	if err := srv.Stop(context.Background()); err != nil {
		logger.WithError(err).Error("Server shutdown failed")
	}

	logger.Info("Server stopped")
}

func setupLogger(level, format string) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
