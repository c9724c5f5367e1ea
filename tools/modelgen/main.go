// Command modelgen writes demo logistic-regression model artifacts so
// the canary workflow can be exercised end to end without a training
// pipeline. Coefficients are drawn from a seeded source, so the same
// seed reproduces the same artifact.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/inferloop/mlcanary/internal/registry"
)

func main() {
	outDir := flag.String("out", "models", "Output directory for artifacts")
	featureCount := flag.Int("features", 5, "Number of model features")
	seed := flag.Int64("seed", 42, "Random seed for the first artifact; the second uses seed+1")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for i, name := range []string{"model_v1.json", "model_v2.json"} {
		path := filepath.Join(*outDir, name)
		artifact := generate(*featureCount, *seed+int64(i), fmt.Sprintf("v%d", i+1))

		if err := write(path, artifact); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", path, err)
			os.Exit(1)
		}

		fmt.Printf("Wrote %s (%d features)\n", path, *featureCount)
	}
}

func generate(featureCount int, seed int64, version string) *registry.Artifact {
	rng := rand.New(rand.NewSource(seed))

	coefficients := make([]float64, featureCount)
	for i := range coefficients {
		coefficients[i] = rng.NormFloat64()
	}

	return &registry.Artifact{
		ModelType:    registry.ModelTypeLogisticRegression,
		Version:      version,
		FeatureCount: featureCount,
		Coefficients: coefficients,
		Intercept:    rng.NormFloat64() * 0.1,
	}
}

func write(path string, artifact *registry.Artifact) error {
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
