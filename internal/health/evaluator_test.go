package health

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalSamples(rng *rand.Rand, n int, mean, stddev float64) []float64 {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = mean + stddev*rng.NormFloat64()
	}
	return samples
}

func TestEvaluateInsufficientData(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name   string
		stable []float64
		canary []float64
	}{
		{"both empty", []float64{}, []float64{}},
		{"canary below minimum", normalSamples(rng, 100, 20, 5), normalSamples(rng, 19, 20, 5)},
		{"stable below minimum", normalSamples(rng, 19, 20, 5), normalSamples(rng, 100, 20, 5)},
		{"both below minimum", normalSamples(rng, 5, 20, 5), normalSamples(rng, 5, 20, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(tt.stable, tt.canary)

			assert.False(t, result.AlertTriggered)
			assert.Equal(t, len(tt.stable), result.StableSampleCount)
			assert.Equal(t, len(tt.canary), result.CanarySampleCount)
			assert.Contains(t, result.Message, "Insufficient data")
			assert.Zero(t, result.PValue)
		})
	}
}

func TestEvaluateExactMinimumRuns(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	stable := normalSamples(rng, MinSampleCount, 20, 5)
	canary := normalSamples(rng, MinSampleCount, 20, 5)

	result := Evaluate(stable, canary)

	assert.NotContains(t, result.Message, "Insufficient data")
	assert.Equal(t, MinSampleCount, result.StableSampleCount)
	assert.Equal(t, MinSampleCount, result.CanarySampleCount)
}

func TestEvaluateDetectsSlowerCanary(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	stable := normalSamples(rng, 200, 15, 3)
	canary := normalSamples(rng, 40, 25, 3)

	result := Evaluate(stable, canary)

	assert.True(t, result.AlertTriggered)
	assert.Less(t, result.PValue, AlphaLevel)
	assert.Greater(t, result.CanaryAvgLatencyMs, result.StableAvgLatencyMs)
	assert.Equal(t, "ALERT: Canary latency is significantly higher than stable.", result.Message)
}

func TestEvaluateNoAlertForSameDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(4))

	stable := normalSamples(rng, 500, 20, 5)
	canary := normalSamples(rng, 500, 20, 5)

	result := Evaluate(stable, canary)

	assert.False(t, result.AlertTriggered)
	assert.Equal(t, "Canary performance is acceptable.", result.Message)
}

func TestEvaluateNoAlertForFasterCanary(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	// Significant difference in the wrong direction must not alert.
	stable := normalSamples(rng, 200, 25, 3)
	canary := normalSamples(rng, 200, 15, 3)

	result := Evaluate(stable, canary)

	require.Less(t, result.PValue, AlphaLevel)
	assert.False(t, result.AlertTriggered)
	assert.Equal(t, "Canary performance is acceptable.", result.Message)
	assert.Less(t, result.CanaryAvgLatencyMs, result.StableAvgLatencyMs)
}

func TestEvaluateIdenticalConstantSamples(t *testing.T) {
	samples := make([]float64, 50)
	for i := range samples {
		samples[i] = 10.0
	}

	result := Evaluate(samples, samples)

	assert.False(t, result.AlertTriggered)
	assert.Equal(t, 1.0, result.PValue)
}

func TestWelchPValueKnownValue(t *testing.T) {
	// Hand-checked case with unequal sizes and variances. The
	// Welch-Satterthwaite degrees of freedom are fractional here, so an
	// integer-df implementation would diverge from this value.
	stable := []float64{10, 11, 9, 10.5, 9.5, 10.2, 9.8, 10.1, 9.9, 10.3,
		10, 11, 9, 10.5, 9.5, 10.2, 9.8, 10.1, 9.9, 10.3}
	canary := []float64{12, 13, 11, 12.5, 11.5, 12.2, 11.8, 12.1, 11.9, 12.3,
		12, 13, 11, 12.5, 11.5, 12.2, 11.8, 12.1, 11.9, 12.3}

	result := Evaluate(stable, canary)

	assert.True(t, result.AlertTriggered)
	assert.InDelta(t, 10.06, result.StableAvgLatencyMs, 0.001)
	assert.InDelta(t, 12.06, result.CanaryAvgLatencyMs, 0.001)
	assert.Less(t, result.PValue, 1e-10)
}

func TestWelchPValueSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(6))

	a := normalSamples(rng, 30, 10, 2)
	b := normalSamples(rng, 50, 14, 4)

	// Two-tailed p-value must not depend on argument order.
	assert.InDelta(t, welchPValue(a, b), welchPValue(b, a), 1e-12)
}

func TestWelchPValueBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 20; i++ {
		a := normalSamples(rng, 20+i, 10+float64(i), 1+float64(i%5))
		b := normalSamples(rng, 20+2*i, 10, 2)

		p := welchPValue(a, b)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}
