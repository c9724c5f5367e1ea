package models

import (
	"time"
)

// Variant identifies which model version served a prediction
type Variant string

const (
	VariantStable Variant = "stable"
	VariantCanary Variant = "canary"
)

// PredictionRequest is the body of a prediction call
type PredictionRequest struct {
	Features []float64 `json:"features"`
}

// PredictionResult carries the outcome of a routed prediction
type PredictionResult struct {
	Probability float64 `json:"probability"`
	ModelUsed   Variant `json:"model_used"`
	LatencyMs   float64 `json:"latency_ms"`
	RequestID   string  `json:"request_id"`
}

// HealthCheckResult is produced fresh on every canary health check.
// It is never cached or persisted.
type HealthCheckResult struct {
	AlertTriggered     bool    `json:"alert_triggered"`
	PValue             float64 `json:"p_value,omitempty"`
	StableAvgLatencyMs float64 `json:"stable_avg_latency_ms,omitempty"`
	CanaryAvgLatencyMs float64 `json:"canary_avg_latency_ms,omitempty"`
	StableSampleCount  int     `json:"stable_sample_count"`
	CanarySampleCount  int     `json:"canary_sample_count"`
	Message            string  `json:"message"`
}

// DeployResult is returned by a successful canary deployment
type DeployResult struct {
	ModelPath       string    `json:"model_path"`
	CanaryStartTime time.Time `json:"canary_start_time"`
}

// PromoteResult is returned by a successful canary promotion
type PromoteResult struct {
	PreviousStablePath string `json:"previous_stable_model"`
	NewStablePath      string `json:"new_stable_model"`
}

// SlowdownResult reports the flag value after a toggle
type SlowdownResult struct {
	SimulateSlowdown bool   `json:"simulate_slowdown"`
	Message          string `json:"message"`
}

// DeploymentStatus is a read-only view of the deployment state
type DeploymentStatus struct {
	StableModelPath  string     `json:"stable_model"`
	CanaryModelPath  string     `json:"canary_model,omitempty"`
	CanaryActive     bool       `json:"canary_active"`
	CanaryStartTime  *time.Time `json:"canary_start_time,omitempty"`
	SimulateSlowdown bool       `json:"simulate_slowdown"`
}
