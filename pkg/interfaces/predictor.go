package interfaces

import (
	"context"
)

// Predictor is the single capability the controller requires of a loaded model:
// accept an ordered feature vector and return a probability in [0, 1].
type Predictor interface {
	// Predict returns the positive-class probability for the feature vector
	Predict(features []float64) (float64, error)

	// FeatureCount returns the number of features the model expects
	FeatureCount() int
}

// ModelLoader materializes a Predictor from an artifact path. Loading must
// fail fast if the artifact is missing or does not deserialize into a
// usable predictor.
type ModelLoader interface {
	// Load reads and validates the artifact at path
	Load(ctx context.Context, path string) (Predictor, error)
}

// ArtifactFetcher reads raw artifact bytes from a backing store
// (local filesystem, object storage).
type ArtifactFetcher interface {
	// Fetch returns the artifact contents at path
	Fetch(ctx context.Context, path string) ([]byte, error)

	// Scheme returns the path scheme this fetcher serves, e.g. "file" or "s3"
	Scheme() string
}
