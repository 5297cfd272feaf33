package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedError(t *testing.T) {
	wrapped := fmt.Errorf("resolve period: %w", Clone(ErrUnknownEvaluationType, "unknown evaluation type \"quiz\""))

	appErr := FromError(wrapped)

	assert.Equal(t, "UNKNOWN_EVALUATION_TYPE", appErr.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Status)
	assert.Contains(t, appErr.Message, "quiz")
}

func TestFromErrorWrapsUntyped(t *testing.T) {
	cause := fmt.Errorf("connection refused")

	appErr := FromError(cause)

	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.ErrorIs(t, appErr, cause)
}

func TestCloneDoesNotMutateOriginal(t *testing.T) {
	clone := Clone(ErrValidation, "month must be YYYY-MM")

	assert.Equal(t, "validation failed", ErrValidation.Message)
	assert.Equal(t, "month must be YYYY-MM", clone.Message)
}
