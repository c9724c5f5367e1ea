package main

import (
	"flag"
	"fmt"
	"os"
)

type Flags struct {
	Port            int
	Host            string
	MetricsPort     int
	EnableMetrics   bool
	StableModel     string
	MaxInferences   int
	S3Region        string
	S3Endpoint      string
	EnableS3        bool
	LogLevel        string
	LogFormat       string
	Version         bool
}

func ParseFlags() *Flags {
	flags := &Flags{}

	flag.IntVar(&flags.Port, "port", 8000, "Server port")
	flag.StringVar(&flags.Host, "host", "0.0.0.0", "Server host")
	flag.IntVar(&flags.MetricsPort, "metrics-port", 9090, "Prometheus metrics port")
	flag.BoolVar(&flags.EnableMetrics, "enable-metrics", true, "Enable Prometheus metrics endpoint")
	flag.StringVar(&flags.StableModel, "stable-model", "models/model_v1.json", "Path of the initial stable model artifact")
	flag.IntVar(&flags.MaxInferences, "max-inferences", 16, "Maximum concurrent model invocations (0 = unbounded)")
	flag.StringVar(&flags.S3Region, "s3-region", "us-east-1", "AWS region for s3:// model paths")
	flag.StringVar(&flags.S3Endpoint, "s3-endpoint", "", "Custom S3 endpoint (for MinIO or localstack)")
	flag.BoolVar(&flags.EnableS3, "enable-s3", false, "Allow s3:// model artifact paths")
	flag.StringVar(&flags.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&flags.LogFormat, "log-format", "json", "Log format (json, text)")
	flag.BoolVar(&flags.Version, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nCanary Model Serving Server\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if flags.Version {
		info := GetBuildInfo()
		fmt.Printf("Version: %s\n", info.Version)
		fmt.Printf("Git Commit: %s\n", info.GitCommit)
		fmt.Printf("Build Date: %s\n", info.BuildDate)
		fmt.Printf("Go Version: %s\n", info.GoVersion)
		fmt.Printf("Platform: %s\n", info.Platform)
		os.Exit(0)
	}

	return flags
}
