package deployment

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inferloop/mlcanary/pkg/errors"
	"github.com/inferloop/mlcanary/pkg/interfaces"
	"github.com/inferloop/mlcanary/pkg/models"
)

// ModelRef is an installed model together with its source path.
// Refs are immutable once installed; transitions swap the reference,
// never mutate the model in place.
type ModelRef struct {
	Path      string
	Predictor interfaces.Predictor
}

// CanaryRef is the candidate model plus the time it became active
type CanaryRef struct {
	ModelRef
	StartTime time.Time
}

// Snapshot is a consistent view of the deployment state taken under the
// state lock. The router works from a snapshot so inference never holds
// the lock.
type Snapshot struct {
	Stable           ModelRef
	Canary           *CanaryRef
	SimulateSlowdown bool
}

// MetricsResetter clears the latency log; satisfied by the latency recorder
type MetricsResetter interface {
	ResetAll()
}

// Manager is the deployment state machine. It owns the stable and canary
// model references and the slowdown flag, all guarded by a single
// exclusive lock so observers never see a half-updated state.
type Manager struct {
	mu sync.Mutex

	logger  *logrus.Logger
	loader  interfaces.ModelLoader
	metrics MetricsResetter

	stable           ModelRef
	canary           *CanaryRef
	simulateSlowdown bool
}

// NewManager creates a state machine with a mandatory stable model.
// Returns a ModelLoadError if the stable artifact cannot be loaded.
func NewManager(ctx context.Context, loader interfaces.ModelLoader, stablePath string, metrics MetricsResetter, logger *logrus.Logger) (*Manager, error) {
	if logger == nil {
		logger = logrus.New()
	}

	predictor, err := loader.Load(ctx, stablePath)
	if err != nil {
		return nil, err
	}

	logger.WithField("stable_model", stablePath).Info("Deployment state initialized")

	return &Manager{
		logger:  logger,
		loader:  loader,
		metrics: metrics,
		stable:  ModelRef{Path: stablePath, Predictor: predictor},
	}, nil
}

// DeployCanary installs a new canary model. Valid only when no canary is
// active; a failed load leaves the state untouched. On success the
// latency log for both variants is cleared so metrics from a previous
// canary episode cannot leak into this one.
func (m *Manager) DeployCanary(ctx context.Context, path string) (*models.DeployResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.canary != nil {
		return nil, errors.NewInvalidStateError(errors.CodeCanaryAlreadyActive,
			"a canary deployment is already active; rollback or promote it first")
	}

	predictor, err := m.loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	m.canary = &CanaryRef{
		ModelRef:  ModelRef{Path: path, Predictor: predictor},
		StartTime: startTime,
	}

	if m.metrics != nil {
		m.metrics.ResetAll()
	}

	m.logger.WithFields(logrus.Fields{
		"canary_model": path,
		"stable_model": m.stable.Path,
	}).Info("Canary deployed")

	return &models.DeployResult{
		ModelPath:       path,
		CanaryStartTime: startTime,
	}, nil
}

// RollbackCanary discards the active canary and reverts fully to stable.
// Latency history is left in place for audit; it is logically stale and
// the next deploy clears it.
func (m *Manager) RollbackCanary() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.canary == nil {
		return errors.NewInvalidStateError(errors.CodeNoActiveCanary, "no active canary to rollback")
	}

	m.logger.WithField("canary_model", m.canary.Path).Info("Canary rolled back")
	m.canary = nil

	return nil
}

// PromoteCanary replaces the stable model with the canary. The health
// check is the operator's responsibility; promotion itself does not
// gate on it.
func (m *Manager) PromoteCanary() (*models.PromoteResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.canary == nil {
		return nil, errors.NewInvalidStateError(errors.CodeNoActiveCanary, "no active canary to promote")
	}

	previous := m.stable.Path
	m.stable = m.canary.ModelRef
	m.canary = nil

	m.logger.WithFields(logrus.Fields{
		"previous_stable": previous,
		"new_stable":      m.stable.Path,
	}).Info("Canary promoted to stable")

	return &models.PromoteResult{
		PreviousStablePath: previous,
		NewStablePath:      m.stable.Path,
	}, nil
}

// ToggleSlowdown flips the slowdown-simulation flag. Valid in any state;
// deployment state is unaffected.
func (m *Manager) ToggleSlowdown() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.simulateSlowdown = !m.simulateSlowdown
	m.logger.WithField("simulate_slowdown", m.simulateSlowdown).Info("Slowdown simulation toggled")

	return m.simulateSlowdown
}

// Snapshot returns a consistent copy of the deployment state
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		Stable:           m.stable,
		Canary:           m.canary,
		SimulateSlowdown: m.simulateSlowdown,
	}
}

// Status returns the operator-facing view of the deployment state
func (m *Manager) Status() models.DeploymentStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	status := models.DeploymentStatus{
		StableModelPath:  m.stable.Path,
		CanaryActive:     m.canary != nil,
		SimulateSlowdown: m.simulateSlowdown,
	}

	if m.canary != nil {
		status.CanaryModelPath = m.canary.Path
		start := m.canary.StartTime
		status.CanaryStartTime = &start
	}

	return status
}
