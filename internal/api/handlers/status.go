package handlers

import (
	"net/http"
	"time"

	"github.com/inferloop/mlcanary/internal/controller"
)

// StatusHandler serves the service status and liveness endpoints
type StatusHandler struct {
	controller *controller.Controller
	version    string
	startTime  time.Time
}

// NewStatusHandler creates a status handler
func NewStatusHandler(ctrl *controller.Controller, version string) *StatusHandler {
	return &StatusHandler{
		controller: ctrl,
		version:    version,
		startTime:  time.Now(),
	}
}

// Root returns basic service information plus the deployment state
func (h *StatusHandler) Root(w http.ResponseWriter, r *http.Request) {
	status := h.controller.Status()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "Canary Model Serving API",
		"version":       h.version,
		"stable_model":  status.StableModelPath,
		"canary_model":  status.CanaryModelPath,
		"canary_active": status.CanaryActive,
	})
}

// Status returns the full deployment status
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.controller.Status())
}

// Health is the process liveness endpoint
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.startTime).String(),
	})
}
