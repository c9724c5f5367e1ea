package registry

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inferloop/mlcanary/pkg/interfaces"
)

// Registry loads predictors from artifact paths. Each Load reads the
// artifact fresh so a deployment only succeeds while the artifact is
// currently present and valid; nothing is cached across calls.
type Registry struct {
	logger   *logrus.Logger
	local    interfaces.ArtifactFetcher
	s3       interfaces.ArtifactFetcher
}

// Option customizes registry construction
type Option func(*Registry)

// WithS3Fetcher enables s3:// artifact paths
func WithS3Fetcher(fetcher interfaces.ArtifactFetcher) Option {
	return func(r *Registry) {
		r.s3 = fetcher
	}
}

// NewRegistry creates a model registry
func NewRegistry(logger *logrus.Logger, opts ...Option) *Registry {
	if logger == nil {
		logger = logrus.New()
	}

	r := &Registry{
		logger: logger,
		local:  NewFileFetcher(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Load reads the artifact at path and returns a validated predictor.
// Paths beginning with s3:// are resolved through the S3 fetcher when
// configured; everything else is treated as a local file path.
func (r *Registry) Load(ctx context.Context, path string) (interfaces.Predictor, error) {
	start := time.Now()

	fetcher := r.local
	if strings.HasPrefix(path, "s3://") && r.s3 != nil {
		fetcher = r.s3
	}

	data, err := fetcher.Fetch(ctx, path)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"path":   path,
			"scheme": fetcher.Scheme(),
		}).WithError(err).Warn("Model artifact fetch failed")
		return nil, err
	}

	artifact, err := DecodeArtifact(data)
	if err != nil {
		r.logger.WithField("path", path).WithError(err).Warn("Model artifact rejected")
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"path":          path,
		"model_type":    artifact.ModelType,
		"feature_count": artifact.FeatureCount,
		"load_time_ms":  float64(time.Since(start).Microseconds()) / 1000.0,
	}).Info("Model loaded")

	return newLogisticModel(artifact), nil
}
