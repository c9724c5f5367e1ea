package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorError(t *testing.T) {
	err := NewInvalidStateError(CodeNoActiveCanary, "no active canary to promote")
	assert.Equal(t, "NO_ACTIVE_CANARY: no active canary to promote", err.Error())

	withDetails := NewInvalidInputError(CodeFeatureMismatch, "wrong feature count").WithDetails("expected 3, got 2")
	assert.Equal(t, "FEATURE_COUNT_MISMATCH: wrong feature count - expected 3, got 2", withDetails.Error())
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := stderrors.New("disk read failed")
	err := NewModelLoadError(CodeModelLoadFailed, "failed to read model file").WithCause(cause)

	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("deploy failed: %w", err)
	var appErr *AppError
	assert.ErrorAs(t, wrapped, &appErr)
	assert.Equal(t, CodeModelLoadFailed, appErr.Code)
}

func TestAppErrorIsMatchesTypeAndCode(t *testing.T) {
	err := NewInvalidStateError(CodeCanaryAlreadyActive, "a canary deployment is already active")

	assert.ErrorIs(t, err, NewInvalidStateError(CodeCanaryAlreadyActive, "different message"))
	assert.NotErrorIs(t, err, NewInvalidStateError(CodeNoActiveCanary, "a canary deployment is already active"))
}

func TestTypePredicates(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		invalidState bool
		modelLoad    bool
		invalidInput bool
	}{
		{"invalid state", NewInvalidStateError(CodeNoActiveCanary, "x"), true, false, false},
		{"model load", NewModelLoadError(CodeModelNotFound, "x"), false, true, false},
		{"invalid input", NewInvalidInputError(CodeEmptyFeatures, "x"), false, false, true},
		{"wrapped model load", fmt.Errorf("deploy: %w", NewModelLoadError(CodeModelNotUsable, "x")), false, true, false},
		{"plain error", stderrors.New("x"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.invalidState, IsInvalidState(tt.err))
			assert.Equal(t, tt.modelLoad, IsModelLoad(tt.err))
			assert.Equal(t, tt.invalidInput, IsInvalidInput(tt.err))
		})
	}
}

func TestHTTPStatusOf(t *testing.T) {
	assert.Equal(t, 409, HTTPStatusOf(NewInvalidStateError(CodeCanaryAlreadyActive, "x")))
	assert.Equal(t, 400, HTTPStatusOf(NewModelLoadError(CodeModelNotFound, "x")))
	assert.Equal(t, 400, HTTPStatusOf(NewInvalidInputError(CodeInvalidInput, "x")))
	assert.Equal(t, 500, HTTPStatusOf(NewInternalError("x")))
	assert.Equal(t, 500, HTTPStatusOf(stderrors.New("x")))
}
