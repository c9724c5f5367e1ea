package registry

import (
	"fmt"
	"math"

	"github.com/inferloop/mlcanary/pkg/errors"
)

// logisticModel is a Predictor backed by logistic regression weights.
// It is immutable after construction, so concurrent Predict calls need
// no synchronization.
type logisticModel struct {
	coefficients []float64
	intercept    float64
}

func newLogisticModel(artifact *Artifact) *logisticModel {
	coefficients := make([]float64, len(artifact.Coefficients))
	copy(coefficients, artifact.Coefficients)

	return &logisticModel{
		coefficients: coefficients,
		intercept:    artifact.Intercept,
	}
}

// Predict returns sigmoid(w.x + b) for the feature vector
func (m *logisticModel) Predict(features []float64) (float64, error) {
	if len(features) == 0 {
		return 0, errors.NewInvalidInputError(errors.CodeEmptyFeatures, "feature vector must not be empty")
	}

	if len(features) != len(m.coefficients) {
		return 0, errors.NewInvalidInputError(errors.CodeFeatureMismatch,
			fmt.Sprintf("model expects %d features, got %d", len(m.coefficients), len(features)))
	}

	score := m.intercept
	for i, x := range features {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, errors.NewInvalidInputError(errors.CodeNonFiniteFeature,
				fmt.Sprintf("feature %d is not finite", i))
		}
		score += m.coefficients[i] * x
	}

	return 1.0 / (1.0 + math.Exp(-score)), nil
}

// FeatureCount returns the number of features the model expects
func (m *logisticModel) FeatureCount() int {
	return len(m.coefficients)
}
