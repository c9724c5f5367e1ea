package registry

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/inferloop/mlcanary/pkg/errors"
)

// ModelType identifies the artifact family a predictor is built from
type ModelType string

const (
	ModelTypeLogisticRegression ModelType = "logistic_regression"
)

// Artifact is the serialized form of a deployable model. The controller
// treats the model as opaque beyond this schema; anything that does not
// decode into a usable predictor is rejected at load time.
type Artifact struct {
	ModelType    ModelType `json:"model_type"`
	Version      string    `json:"version,omitempty"`
	FeatureCount int       `json:"feature_count"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// DecodeArtifact parses and validates raw artifact bytes
func DecodeArtifact(data []byte) (*Artifact, error) {
	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, errors.NewModelLoadError(errors.CodeModelLoadFailed, "artifact is not valid JSON").WithCause(err)
	}

	if err := artifact.Validate(); err != nil {
		return nil, err
	}

	return &artifact, nil
}

// Validate checks that the artifact describes a usable predictor
func (a *Artifact) Validate() error {
	if a.ModelType != ModelTypeLogisticRegression {
		return errors.NewModelLoadError(errors.CodeModelNotUsable,
			fmt.Sprintf("unsupported model type %q", a.ModelType))
	}

	if a.FeatureCount <= 0 {
		return errors.NewModelLoadError(errors.CodeModelNotUsable, "feature_count must be positive")
	}

	if len(a.Coefficients) != a.FeatureCount {
		return errors.NewModelLoadError(errors.CodeModelNotUsable,
			fmt.Sprintf("expected %d coefficients, artifact has %d", a.FeatureCount, len(a.Coefficients)))
	}

	for i, c := range a.Coefficients {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return errors.NewModelLoadError(errors.CodeModelNotUsable,
				fmt.Sprintf("coefficient %d is not finite", i))
		}
	}

	if math.IsNaN(a.Intercept) || math.IsInf(a.Intercept, 0) {
		return errors.NewModelLoadError(errors.CodeModelNotUsable, "intercept is not finite")
	}

	return nil
}
