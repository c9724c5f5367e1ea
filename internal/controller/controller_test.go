package controller

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inferloop/mlcanary/internal/health"
	"github.com/inferloop/mlcanary/internal/registry"
	"github.com/inferloop/mlcanary/internal/routing"
	"github.com/inferloop/mlcanary/pkg/errors"
	"github.com/inferloop/mlcanary/pkg/models"
)

func writeModel(t *testing.T, dir, name string, coefficients []float64, intercept float64) string {
	t.Helper()

	artifact := registry.Artifact{
		ModelType:    registry.ModelTypeLogisticRegression,
		Version:      name,
		FeatureCount: len(coefficients),
		Coefficients: coefficients,
		Intercept:    intercept,
	}

	data, err := json.Marshal(artifact)
	require.NoError(t, err)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func newTestController(t *testing.T, seed int64) (*Controller, string, string) {
	t.Helper()

	dir := t.TempDir()
	stablePath := writeModel(t, dir, "model_v1.json", []float64{0.5, -0.2}, 0.1)
	canaryPath := writeModel(t, dir, "model_v2.json", []float64{1.5, 0.8}, -0.3)

	logger := logrus.New()
	reg := registry.NewRegistry(logger)

	ctrl, err := New(context.Background(), &Config{
		StableModelPath: stablePath,
		Routing:         &routing.Config{Seed: seed},
	}, reg, nil, logger)
	require.NoError(t, err)

	return ctrl, stablePath, canaryPath
}

func TestNewFailsWithoutStableModel(t *testing.T) {
	logger := logrus.New()
	reg := registry.NewRegistry(logger)

	_, err := New(context.Background(), &Config{
		StableModelPath: filepath.Join(t.TempDir(), "missing.json"),
	}, reg, nil, logger)

	require.Error(t, err)
	assert.True(t, errors.IsModelLoad(err))
}

func TestDeployPredictAndDetectSlowdown(t *testing.T) {
	ctrl, _, canaryPath := newTestController(t, 21)
	ctx := context.Background()
	features := []float64{1.0, 2.0}

	// Before any canary exists there is nothing to compare.
	result := ctrl.CheckCanaryHealth()
	assert.False(t, result.AlertTriggered)
	assert.Contains(t, result.Message, "Insufficient data")

	_, err := ctrl.DeployCanary(ctx, canaryPath)
	require.NoError(t, err)

	// With slowdown off both variants serve at native speed. Drive enough
	// traffic for the canary to pass the minimum sample gate.
	for i := 0; i < 600; i++ {
		_, err := ctrl.Predict(ctx, features)
		require.NoError(t, err)
	}

	healthy := ctrl.CheckCanaryHealth()
	require.GreaterOrEqual(t, healthy.CanarySampleCount, health.MinSampleCount)
	require.GreaterOrEqual(t, healthy.StableSampleCount, health.MinSampleCount)

	toggle := ctrl.ToggleSlowdown()
	assert.True(t, toggle.SimulateSlowdown)
	assert.Equal(t, "Slowdown simulation enabled", toggle.Message)

	for i := 0; i < 600; i++ {
		_, err := ctrl.Predict(ctx, features)
		require.NoError(t, err)
	}

	degraded := ctrl.CheckCanaryHealth()
	assert.True(t, degraded.AlertTriggered)
	assert.Less(t, degraded.PValue, health.AlphaLevel)
	assert.Greater(t, degraded.CanaryAvgLatencyMs, degraded.StableAvgLatencyMs)
	assert.Equal(t, "ALERT: Canary latency is significantly higher than stable.", degraded.Message)
}

func TestRollbackRestoresStableOnlyServing(t *testing.T) {
	ctrl, stablePath, canaryPath := newTestController(t, 23)
	ctx := context.Background()

	_, err := ctrl.DeployCanary(ctx, canaryPath)
	require.NoError(t, err)
	require.NoError(t, ctrl.RollbackCanary())

	status := ctrl.Status()
	assert.False(t, status.CanaryActive)
	assert.Equal(t, stablePath, status.StableModelPath)

	for i := 0; i < 100; i++ {
		result, err := ctrl.Predict(ctx, []float64{1.0, 2.0})
		require.NoError(t, err)
		assert.Equal(t, models.VariantStable, result.ModelUsed)
	}
}

func TestPromoteSwitchesServedModel(t *testing.T) {
	ctrl, stablePath, canaryPath := newTestController(t, 25)
	ctx := context.Background()
	features := []float64{1.0, 2.0}

	baseline, err := ctrl.Predict(ctx, features)
	require.NoError(t, err)

	_, err = ctrl.DeployCanary(ctx, canaryPath)
	require.NoError(t, err)

	promoted, err := ctrl.PromoteCanary()
	require.NoError(t, err)
	assert.Equal(t, stablePath, promoted.PreviousStablePath)
	assert.Equal(t, canaryPath, promoted.NewStablePath)

	// All traffic now flows to the promoted model; the two artifacts have
	// different weights, so the probability shifts.
	for i := 0; i < 50; i++ {
		result, err := ctrl.Predict(ctx, features)
		require.NoError(t, err)
		assert.Equal(t, models.VariantStable, result.ModelUsed)
		assert.NotEqual(t, baseline.Probability, result.Probability)
	}

	// The canary slot is free again for the next candidate.
	_, err = ctrl.DeployCanary(ctx, stablePath)
	require.NoError(t, err)
}

func TestDeployResetsLatencyHistory(t *testing.T) {
	ctrl, _, canaryPath := newTestController(t, 27)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		_, err := ctrl.Predict(ctx, []float64{1.0, 2.0})
		require.NoError(t, err)
	}
	require.Equal(t, 50, ctrl.CheckCanaryHealth().StableSampleCount)

	_, err := ctrl.DeployCanary(ctx, canaryPath)
	require.NoError(t, err)

	// Samples gathered before the deploy belong to a different episode.
	result := ctrl.CheckCanaryHealth()
	assert.Equal(t, 0, result.StableSampleCount)
	assert.Equal(t, 0, result.CanarySampleCount)
}

func TestRollbackKeepsLatencyHistory(t *testing.T) {
	ctrl, _, canaryPath := newTestController(t, 29)
	ctx := context.Background()

	_, err := ctrl.DeployCanary(ctx, canaryPath)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		_, err := ctrl.Predict(ctx, []float64{1.0, 2.0})
		require.NoError(t, err)
	}

	before := ctrl.CheckCanaryHealth()
	require.NoError(t, ctrl.RollbackCanary())
	after := ctrl.CheckCanaryHealth()

	assert.Equal(t, before.StableSampleCount, after.StableSampleCount)
	assert.Equal(t, before.CanarySampleCount, after.CanarySampleCount)
}

func TestDeployRejectsMissingArtifact(t *testing.T) {
	ctrl, _, canaryPath := newTestController(t, 31)
	ctx := context.Background()

	_, err := ctrl.DeployCanary(ctx, filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.IsModelLoad(err))
	assert.False(t, ctrl.Status().CanaryActive)

	// A valid candidate still deploys afterwards.
	_, err = ctrl.DeployCanary(ctx, canaryPath)
	require.NoError(t, err)
}

func TestPredictRejectsFeatureMismatch(t *testing.T) {
	ctrl, _, _ := newTestController(t, 33)

	_, err := ctrl.Predict(context.Background(), []float64{1.0, 2.0, 3.0})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))

	// A failed prediction leaves no latency sample behind.
	assert.Equal(t, 0, ctrl.CheckCanaryHealth().StableSampleCount)
}
