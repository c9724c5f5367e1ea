package registry

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/inferloop/mlcanary/pkg/errors"
)

// FileFetcher reads artifacts from the local filesystem
type FileFetcher struct{}

// NewFileFetcher creates a local filesystem fetcher
func NewFileFetcher() *FileFetcher {
	return &FileFetcher{}
}

// Scheme returns the path scheme this fetcher serves
func (f *FileFetcher) Scheme() string {
	return "file"
}

// Fetch returns the artifact contents at path
func (f *FileFetcher) Fetch(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewModelLoadError(errors.CodeModelNotFound,
				fmt.Sprintf("model file not found: %s", path)).WithCause(err)
		}
		return nil, errors.NewModelLoadError(errors.CodeModelLoadFailed,
			fmt.Sprintf("failed to read model file: %s", path)).WithCause(err)
	}
	return data, nil
}

// S3FetcherConfig configures the S3 artifact fetcher
type S3FetcherConfig struct {
	Region   string        `json:"region" yaml:"region"`
	Endpoint string        `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`
}

// S3Fetcher reads artifacts from s3://bucket/key paths
type S3Fetcher struct {
	config *S3FetcherConfig
	client *s3.S3
	logger *logrus.Logger
}

// NewS3Fetcher creates an S3 artifact fetcher
func NewS3Fetcher(config *S3FetcherConfig, logger *logrus.Logger) (*S3Fetcher, error) {
	if config == nil {
		config = &S3FetcherConfig{Region: "us-east-1", Timeout: 30 * time.Second}
	}

	if logger == nil {
		logger = logrus.New()
	}

	awsConfig := &aws.Config{Region: aws.String(config.Region)}
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &S3Fetcher{
		config: config,
		client: s3.New(sess),
		logger: logger,
	}, nil
}

// Scheme returns the path scheme this fetcher serves
func (f *S3Fetcher) Scheme() string {
	return "s3"
}

// Fetch downloads s3://bucket/key into memory
func (f *S3Fetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	bucket, key, err := parseS3Path(path)
	if err != nil {
		return nil, err
	}

	fetchCtx := ctx
	if f.config.Timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, f.config.Timeout)
		defer cancel()
	}

	f.logger.WithFields(logrus.Fields{
		"bucket": bucket,
		"key":    key,
	}).Debug("Fetching model artifact from S3")

	output, err := f.client.GetObjectWithContext(fetchCtx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, errors.NewModelLoadError(errors.CodeModelNotFound,
				fmt.Sprintf("model object not found: %s", path)).WithCause(err)
		}
		return nil, errors.NewModelLoadError(errors.CodeModelLoadFailed,
			fmt.Sprintf("failed to fetch model object: %s", path)).WithCause(err)
	}
	defer output.Body.Close()

	data, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, errors.NewModelLoadError(errors.CodeModelLoadFailed,
			fmt.Sprintf("failed to read model object body: %s", path)).WithCause(err)
	}

	return data, nil
}

// parseS3Path splits s3://bucket/key into its parts
func parseS3Path(path string) (bucket, key string, err error) {
	trimmed := strings.TrimPrefix(path, "s3://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errors.NewModelLoadError(errors.CodeModelLoadFailed,
			fmt.Sprintf("invalid S3 path: %s", path))
	}
	return parts[0], parts[1], nil
}
