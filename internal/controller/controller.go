package controller

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/inferloop/mlcanary/internal/deployment"
	"github.com/inferloop/mlcanary/internal/health"
	"github.com/inferloop/mlcanary/internal/metrics"
	obsmetrics "github.com/inferloop/mlcanary/internal/observability/metrics"
	"github.com/inferloop/mlcanary/internal/registry"
	"github.com/inferloop/mlcanary/internal/routing"
	"github.com/inferloop/mlcanary/pkg/models"
)

// Config configures the canary controller
type Config struct {
	StableModelPath string          `json:"stable_model_path" yaml:"stable_model_path"`
	Routing         *routing.Config `json:"routing" yaml:"routing"`
}

// Controller is the composition root. It wires the registry, deployment
// state machine, traffic router, latency recorder and health evaluator
// behind the operational surface the API and CLI expose.
type Controller struct {
	logger      *logrus.Logger
	deployments *deployment.Manager
	recorder    *metrics.Recorder
	router      *routing.Router
	collectors  *obsmetrics.Collectors
}

// New builds a controller with a mandatory stable model. Initialization
// fails if the stable artifact cannot be loaded.
func New(ctx context.Context, config *Config, reg *registry.Registry, collectors *obsmetrics.Collectors, logger *logrus.Logger) (*Controller, error) {
	if logger == nil {
		logger = logrus.New()
	}

	recorder := metrics.NewRecorder()

	deployments, err := deployment.NewManager(ctx, reg, config.StableModelPath, recorder, logger)
	if err != nil {
		return nil, err
	}

	var observer routing.Observer
	if collectors != nil {
		observer = collectors
	}

	router := routing.NewRouter(config.Routing, deployments, recorder, observer, logger)

	return &Controller{
		logger:      logger,
		deployments: deployments,
		recorder:    recorder,
		router:      router,
		collectors:  collectors,
	}, nil
}

// Predict routes one prediction request through the traffic splitter
func (c *Controller) Predict(ctx context.Context, features []float64) (*models.PredictionResult, error) {
	return c.router.RouteAndPredict(ctx, features)
}

// DeployCanary installs a new canary model from path
func (c *Controller) DeployCanary(ctx context.Context, path string) (*models.DeployResult, error) {
	result, err := c.deployments.DeployCanary(ctx, path)
	if c.collectors != nil {
		c.collectors.ObserveAdminOp("deploy_canary", err)
		if err == nil {
			c.collectors.SetCanaryActive(true)
		}
	}
	return result, err
}

// RollbackCanary discards the active canary
func (c *Controller) RollbackCanary() error {
	err := c.deployments.RollbackCanary()
	if c.collectors != nil {
		c.collectors.ObserveAdminOp("rollback_canary", err)
		if err == nil {
			c.collectors.SetCanaryActive(false)
		}
	}
	return err
}

// PromoteCanary replaces stable with the active canary
func (c *Controller) PromoteCanary() (*models.PromoteResult, error) {
	result, err := c.deployments.PromoteCanary()
	if c.collectors != nil {
		c.collectors.ObserveAdminOp("promote_canary", err)
		if err == nil {
			c.collectors.SetCanaryActive(false)
		}
	}
	return result, err
}

// ToggleSlowdown flips the slowdown-simulation flag
func (c *Controller) ToggleSlowdown() models.SlowdownResult {
	enabled := c.deployments.ToggleSlowdown()

	message := "Slowdown simulation disabled"
	if enabled {
		message = "Slowdown simulation enabled"
	}

	return models.SlowdownResult{
		SimulateSlowdown: enabled,
		Message:          message,
	}
}

// CheckCanaryHealth evaluates the latency samples accumulated since the
// canary was deployed. It always succeeds; insufficient data is a normal
// outcome, not an error.
func (c *Controller) CheckCanaryHealth() models.HealthCheckResult {
	stable := c.recorder.Snapshot(models.VariantStable)
	canary := c.recorder.Snapshot(models.VariantCanary)

	result := health.Evaluate(stable, canary)

	if result.AlertTriggered && c.collectors != nil {
		c.collectors.ObserveHealthAlert()
	}

	c.logger.WithFields(logrus.Fields{
		"alert_triggered": result.AlertTriggered,
		"p_value":         result.PValue,
		"stable_samples":  result.StableSampleCount,
		"canary_samples":  result.CanarySampleCount,
	}).Info("Canary health checked")

	return result
}

// Status returns the current deployment status
func (c *Controller) Status() models.DeploymentStatus {
	return c.deployments.Status()
}
