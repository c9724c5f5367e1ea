package metrics

import (
	"sync"

	"github.com/inferloop/mlcanary/pkg/models"
)

// Recorder is an append-only store of per-variant latency samples. Its
// lock is distinct from the deployment-state lock so predictions are
// never serialized behind admin operations; it is held only for the
// append and the snapshot copy.
type Recorder struct {
	mu      sync.Mutex
	samples map[models.Variant][]float64
}

// NewRecorder creates an empty latency recorder
func NewRecorder() *Recorder {
	return &Recorder{
		samples: map[models.Variant][]float64{
			models.VariantStable: {},
			models.VariantCanary: {},
		},
	}
}

// Record appends a latency observation in milliseconds for the variant
func (r *Recorder) Record(variant models.Variant, latencyMs float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.samples[variant] = append(r.samples[variant], latencyMs)
}

// Snapshot returns a consistent copy of the variant's samples, never a
// live view, so statistical work proceeds lock-free.
func (r *Recorder) Snapshot(variant models.Variant) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	src := r.samples[variant]
	out := make([]float64, len(src))
	copy(out, src)

	return out
}

// SampleCount returns the number of samples recorded for the variant
func (r *Recorder) SampleCount(variant models.Variant) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.samples[variant])
}

// ResetAll atomically clears both variants' samples. Invoked only when a
// new canary is deployed.
func (r *Recorder) ResetAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.samples = map[models.Variant][]float64{
		models.VariantStable: {},
		models.VariantCanary: {},
	}
}
