package errors

import (
	"errors"
	"fmt"
)

// Common application errors
var (
	// Deployment lifecycle errors
	ErrCanaryAlreadyActive = errors.New("a canary deployment is already active")
	ErrNoActiveCanary      = errors.New("no active canary deployment")

	// Model loading errors
	ErrModelNotFound    = errors.New("model artifact not found")
	ErrModelLoadFailed  = errors.New("failed to load model")
	ErrModelNotUsable   = errors.New("artifact does not describe a usable predictor")
	ErrArtifactCorrupt  = errors.New("model artifact is corrupt")

	// Prediction input errors
	ErrEmptyFeatureVector   = errors.New("feature vector must not be empty")
	ErrFeatureCountMismatch = errors.New("feature vector length does not match model")
	ErrInvalidFeatureValue  = errors.New("feature vector contains non-finite value")

	// Internal errors
	ErrInternal = errors.New("internal error")
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeInvalidState ErrorType = "invalid_state"
	ErrorTypeModelLoad    ErrorType = "model_load"
	ErrorTypeInvalidInput ErrorType = "invalid_input"
	ErrorTypeInternal     ErrorType = "internal"
)

// AppError represents an application-specific error with additional context
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	Cause      error     `json:"-"`
	HTTPStatus int       `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// WithCause attaches the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// NewInvalidStateError creates an error for an illegal lifecycle transition
func NewInvalidStateError(code, message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidState,
		Code:       code,
		Message:    message,
		HTTPStatus: 409,
	}
}

// NewModelLoadError creates an error for a missing or corrupt model artifact
func NewModelLoadError(code, message string) *AppError {
	return &AppError{
		Type:       ErrorTypeModelLoad,
		Code:       code,
		Message:    message,
		HTTPStatus: 400,
	}
}

// NewInvalidInputError creates an error for a malformed prediction request
func NewInvalidInputError(code, message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidInput,
		Code:       code,
		Message:    message,
		HTTPStatus: 400,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       CodeInternalError,
		Message:    message,
		HTTPStatus: 500,
	}
}

// IsInvalidState reports whether err is an invalid lifecycle transition
func IsInvalidState(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == ErrorTypeInvalidState
	}
	return false
}

// IsModelLoad reports whether err is a model loading failure
func IsModelLoad(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == ErrorTypeModelLoad
	}
	return false
}

// IsInvalidInput reports whether err is a malformed prediction request
func IsInvalidInput(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == ErrorTypeInvalidInput
	}
	return false
}

// HTTPStatusOf returns the HTTP status carried by err, or 500
func HTTPStatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.HTTPStatus != 0 {
		return appErr.HTTPStatus
	}
	return 500
}

// ErrorResponse represents an error response for APIs
type ErrorResponse struct {
	Error     *AppError `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp string    `json:"timestamp"`
	Path      string    `json:"path,omitempty"`
}

// Error codes for different error scenarios
const (
	// Lifecycle error codes
	CodeCanaryAlreadyActive = "CANARY_ALREADY_ACTIVE"
	CodeNoActiveCanary      = "NO_ACTIVE_CANARY"

	// Model loading error codes
	CodeModelNotFound  = "MODEL_NOT_FOUND"
	CodeModelLoadFailed = "MODEL_LOAD_FAILED"
	CodeModelNotUsable = "MODEL_NOT_USABLE"

	// Input error codes
	CodeInvalidInput     = "INVALID_INPUT"
	CodeEmptyFeatures    = "EMPTY_FEATURE_VECTOR"
	CodeFeatureMismatch  = "FEATURE_COUNT_MISMATCH"
	CodeNonFiniteFeature = "NON_FINITE_FEATURE"

	// Internal error codes
	CodeInternalError = "INTERNAL_ERROR"
)
