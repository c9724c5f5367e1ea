package health

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/inferloop/mlcanary/pkg/models"
)

const (
	// MinSampleCount is the enforced minimum number of observations per
	// variant before the test runs. The power analysis recommends 36 per
	// group to detect a 10ms shift at 80% power; that figure is a design
	// target, not a gate.
	MinSampleCount = 20

	// AlphaLevel is the significance threshold for the alert decision
	AlphaLevel = 0.05
)

const (
	msgInsufficientData = "Insufficient data for statistical analysis. Need at least 20 samples for both models."
	msgAcceptable       = "Canary performance is acceptable."
	msgAlert            = "ALERT: Canary latency is significantly higher than stable."
)

// Evaluate compares stable and canary latency samples with Welch's
// unequal-variance t-test and decides whether the canary should raise an
// alert. It is a pure function over the snapshots handed to it.
//
// The decision combines a two-tailed significance test with a
// one-directional sign condition: alert when p < 0.05 AND the canary
// mean exceeds the stable mean. Downstream consumers depend on this
// exact threshold behavior.
func Evaluate(stableSamples, canarySamples []float64) models.HealthCheckResult {
	stableCount := len(stableSamples)
	canaryCount := len(canarySamples)

	if stableCount < MinSampleCount || canaryCount < MinSampleCount {
		return models.HealthCheckResult{
			AlertTriggered:    false,
			StableSampleCount: stableCount,
			CanarySampleCount: canaryCount,
			Message:           msgInsufficientData,
		}
	}

	stableMean := stat.Mean(stableSamples, nil)
	canaryMean := stat.Mean(canarySamples, nil)

	pValue := welchPValue(stableSamples, canarySamples)

	alert := pValue < AlphaLevel && canaryMean > stableMean

	message := msgAcceptable
	if alert {
		message = msgAlert
	}

	return models.HealthCheckResult{
		AlertTriggered:     alert,
		PValue:             pValue,
		StableAvgLatencyMs: stableMean,
		CanaryAvgLatencyMs: canaryMean,
		StableSampleCount:  stableCount,
		CanarySampleCount:  canaryCount,
		Message:            message,
	}
}

// welchPValue computes the two-tailed p-value of Welch's t-test using
// sample variance with Bessel's correction and the Welch-Satterthwaite
// (possibly fractional) degrees of freedom.
func welchPValue(stable, canary []float64) float64 {
	nStable := float64(len(stable))
	nCanary := float64(len(canary))

	meanStable := stat.Mean(stable, nil)
	meanCanary := stat.Mean(canary, nil)

	// stat.Variance divides by n-1.
	varStable := stat.Variance(stable, nil)
	varCanary := stat.Variance(canary, nil)

	seStable := varStable / nStable
	seCanary := varCanary / nCanary
	pooled := seStable + seCanary

	if pooled == 0 {
		// Identical constant samples carry no evidence of a difference.
		return 1.0
	}

	t := (meanCanary - meanStable) / math.Sqrt(pooled)

	df := pooled * pooled /
		(seStable*seStable/(nStable-1) + seCanary*seCanary/(nCanary-1))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	pValue := 2 * dist.CDF(-math.Abs(t))

	if pValue > 1 {
		pValue = 1
	}

	return pValue
}
