package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inferloop/mlcanary/pkg/models"
)

// Collectors aggregates the Prometheus metrics exposed by the service
type Collectors struct {
	registry *prometheus.Registry

	predictionsTotal  *prometheus.CounterVec
	predictionLatency *prometheus.HistogramVec
	adminOpsTotal     *prometheus.CounterVec
	canaryActive      prometheus.Gauge
	healthAlerts      prometheus.Counter
}

// NewCollectors creates and registers the service metrics
func NewCollectors(namespace string) *Collectors {
	if namespace == "" {
		namespace = "mlcanary"
	}

	registry := prometheus.NewRegistry()

	c := &Collectors{
		registry: registry,
		predictionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Total prediction requests served, by variant",
		}, []string{"variant"}),
		predictionLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prediction_latency_ms",
			Help:      "Prediction latency in milliseconds, by variant",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500},
		}, []string{"variant"}),
		adminOpsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_operations_total",
			Help:      "Total admin operations, by operation and outcome",
		}, []string{"operation", "status"}),
		canaryActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "canary_active",
			Help:      "Whether a canary deployment is currently active",
		}),
		healthAlerts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "health_check_alerts_total",
			Help:      "Total health checks that raised a latency alert",
		}),
	}

	registry.MustRegister(
		c.predictionsTotal,
		c.predictionLatency,
		c.adminOpsTotal,
		c.canaryActive,
		c.healthAlerts,
	)

	return c
}

// ObservePrediction records one served prediction
func (c *Collectors) ObservePrediction(variant models.Variant, latencyMs float64) {
	c.predictionsTotal.WithLabelValues(string(variant)).Inc()
	c.predictionLatency.WithLabelValues(string(variant)).Observe(latencyMs)
}

// ObserveAdminOp records one admin operation outcome
func (c *Collectors) ObserveAdminOp(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.adminOpsTotal.WithLabelValues(operation, status).Inc()
}

// SetCanaryActive updates the canary-active gauge
func (c *Collectors) SetCanaryActive(active bool) {
	if active {
		c.canaryActive.Set(1)
	} else {
		c.canaryActive.Set(0)
	}
}

// ObserveHealthAlert counts a raised alert
func (c *Collectors) ObserveHealthAlert() {
	c.healthAlerts.Inc()
}

// Handler returns the scrape endpoint handler
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
