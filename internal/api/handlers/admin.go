package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/inferloop/mlcanary/internal/controller"
	"github.com/inferloop/mlcanary/pkg/errors"
)

// AdminHandler serves the canary lifecycle endpoints
type AdminHandler struct {
	controller *controller.Controller
}

// NewAdminHandler creates an admin handler
func NewAdminHandler(ctrl *controller.Controller) *AdminHandler {
	return &AdminHandler{controller: ctrl}
}

// DeployRequest is the body of a deploy-canary call
type DeployRequest struct {
	ModelPath string `json:"model_path"`
}

// DeployCanary deploys a new canary model
func (h *AdminHandler) DeployCanary(w http.ResponseWriter, r *http.Request) {
	var request DeployRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, r, errors.NewInvalidInputError(errors.CodeInvalidInput, "request body is not valid JSON").WithCause(err))
		return
	}

	if request.ModelPath == "" {
		writeError(w, r, errors.NewInvalidInputError(errors.CodeInvalidInput, "model_path is required"))
		return
	}

	result, err := h.controller.DeployCanary(r.Context(), request.ModelPath)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "success",
		"message":           "Canary model deployed successfully",
		"model_path":        result.ModelPath,
		"canary_start_time": result.CanaryStartTime,
	})
}

// RollbackCanary rolls back the active canary
func (h *AdminHandler) RollbackCanary(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.RollbackCanary(); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Canary rolled back successfully",
	})
}

// PromoteCanary promotes the active canary to stable
func (h *AdminHandler) PromoteCanary(w http.ResponseWriter, r *http.Request) {
	result, err := h.controller.PromoteCanary()
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":                "success",
		"message":               "Canary promoted to stable successfully",
		"previous_stable_model": result.PreviousStablePath,
		"new_stable_model":      result.NewStablePath,
	})
}

// ToggleSlowdown flips the slowdown-simulation flag
func (h *AdminHandler) ToggleSlowdown(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.controller.ToggleSlowdown())
}

// CheckCanaryHealth runs the latency comparison. Always 200; insufficient
// data is a normal outcome.
func (h *AdminHandler) CheckCanaryHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.controller.CheckCanaryHealth())
}
