package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/inferloop/mlcanary/internal/api/middleware"
	"github.com/inferloop/mlcanary/pkg/errors"
)

// writeJSON writes data as a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps an error onto the API error envelope. AppErrors carry
// their own HTTP status; anything else is a 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		appErr = errors.NewInternalError(err.Error())
	}

	writeJSON(w, appErr.HTTPStatus, errors.ErrorResponse{
		Error:     appErr,
		RequestID: middleware.GetRequestID(r.Context()),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      r.URL.Path,
	})
}
