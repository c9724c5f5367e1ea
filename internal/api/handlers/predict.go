package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/inferloop/mlcanary/internal/controller"
	"github.com/inferloop/mlcanary/pkg/errors"
	"github.com/inferloop/mlcanary/pkg/models"
)

// PredictHandler serves the prediction endpoint
type PredictHandler struct {
	controller *controller.Controller
}

// NewPredictHandler creates a prediction handler
func NewPredictHandler(ctrl *controller.Controller) *PredictHandler {
	return &PredictHandler{controller: ctrl}
}

// Predict routes a prediction request through the traffic splitter
func (h *PredictHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var request models.PredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, r, errors.NewInvalidInputError(errors.CodeInvalidInput, "request body is not valid JSON").WithCause(err))
		return
	}

	if len(request.Features) == 0 {
		writeError(w, r, errors.NewInvalidInputError(errors.CodeEmptyFeatures, "features must be a non-empty array of numbers"))
		return
	}

	result, err := h.controller.Predict(r.Context(), request.Features)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
