package routing

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/inferloop/mlcanary/internal/deployment"
	"github.com/inferloop/mlcanary/internal/metrics"
	"github.com/inferloop/mlcanary/pkg/models"
)

const (
	// CanaryTrafficFraction is the probability a request is routed to an
	// active canary. Selection is an independent draw per request, so the
	// realized share converges to this only statistically.
	CanaryTrafficFraction = 0.10

	// SlowdownDelay is the artificial latency injected for canary
	// requests while slowdown simulation is enabled. It runs inside the
	// timed region so measured latency reflects it.
	SlowdownDelay = 10 * time.Millisecond
)

// Config configures the router
type Config struct {
	// MaxConcurrentInferences bounds in-flight model invocations so
	// CPU-bound inference cannot starve the process. Zero disables the
	// bound.
	MaxConcurrentInferences int `json:"max_concurrent_inferences" yaml:"max_concurrent_inferences"`

	// Seed seeds the routing random source; zero means time-based
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// Observer receives routing outcomes; satisfied by the Prometheus collectors
type Observer interface {
	ObservePrediction(variant models.Variant, latencyMs float64)
}

// Router selects a variant per prediction request, invokes the model,
// measures latency and records the sample. It never holds the deployment
// state lock across a model invocation.
type Router struct {
	logger      *logrus.Logger
	deployments *deployment.Manager
	recorder    *metrics.Recorder
	observer    Observer

	rngMu sync.Mutex
	rng   *rand.Rand

	sem chan struct{}
}

// NewRouter creates a traffic router
func NewRouter(config *Config, deployments *deployment.Manager, recorder *metrics.Recorder, observer Observer, logger *logrus.Logger) *Router {
	if config == nil {
		config = &Config{MaxConcurrentInferences: 0}
	}

	if logger == nil {
		logger = logrus.New()
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	r := &Router{
		logger:      logger,
		deployments: deployments,
		recorder:    recorder,
		observer:    observer,
		rng:         rand.New(rand.NewSource(seed)),
	}

	if config.MaxConcurrentInferences > 0 {
		r.sem = make(chan struct{}, config.MaxConcurrentInferences)
	}

	return r
}

// RouteAndPredict routes one prediction request. It snapshots the
// deployment state, releases the state lock, selects a variant (10%
// canary when one is active), runs inference inside a timed region and
// appends the latency sample under the variant actually used.
func (r *Router) RouteAndPredict(ctx context.Context, features []float64) (*models.PredictionResult, error) {
	requestID := "req_" + uuid.NewString()

	snapshot := r.deployments.Snapshot()

	variant := models.VariantStable
	ref := snapshot.Stable
	if snapshot.Canary != nil && r.draw() < CanaryTrafficFraction {
		variant = models.VariantCanary
		ref = snapshot.Canary.ModelRef
	}

	if r.sem != nil {
		select {
		case r.sem <- struct{}{}:
			defer func() { <-r.sem }()
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	start := time.Now()

	if variant == models.VariantCanary && snapshot.SimulateSlowdown {
		time.Sleep(SlowdownDelay)
	}

	probability, err := ref.Predictor.Predict(features)
	latencyMs := float64(time.Since(start).Microseconds()) / 1000.0

	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"model_used": variant,
		}).WithError(err).Warn("Prediction rejected")
		return nil, err
	}

	r.recorder.Record(variant, latencyMs)
	if r.observer != nil {
		r.observer.ObservePrediction(variant, latencyMs)
	}

	r.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"model_used": variant,
		"latency_ms": latencyMs,
	}).Debug("Prediction served")

	return &models.PredictionResult{
		Probability: probability,
		ModelUsed:   variant,
		LatencyMs:   latencyMs,
		RequestID:   requestID,
	}, nil
}

// draw returns one uniform variate; the source is guarded because
// requests route concurrently.
func (r *Router) draw() float64 {
	r.rngMu.Lock()
	defer r.rngMu.Unlock()

	return r.rng.Float64()
}
