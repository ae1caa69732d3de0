package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorizedError_ErrorString(t *testing.T) {
	err := NewValidationError("email", "is required")
	assert.Equal(t, "VALIDATION_ERROR: invalid field 'email': is required", err.Error())

	cause := errors.New("connection refused")
	wrapped := NewProviderError("weather request failed", cause)
	assert.Contains(t, wrapped.Error(), "connection refused")
}

func TestCategorizedError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewTransportError("smtp dial failed", cause)

	assert.True(t, errors.Is(err, cause))
}

func TestAsCategorized_ThroughWrapping(t *testing.T) {
	inner := NewNotFoundError("user", "abc-123")
	outer := fmt.Errorf("loading user: %w", inner)

	got, ok := AsCategorized(outer)
	require.True(t, ok)
	assert.Equal(t, CategoryNotFound, got.Category)
	assert.Equal(t, "abc-123", got.Details["id"])
}

func TestAsCategorized_PlainError(t *testing.T) {
	_, ok := AsCategorized(errors.New("plain"))
	assert.False(t, ok)
}

func TestIsCategory(t *testing.T) {
	err := NewConflictError("duplicate email")

	assert.True(t, IsCategory(err, CategoryConflict))
	assert.False(t, IsCategory(err, CategoryValidation))
	assert.False(t, IsCategory(nil, CategoryConflict))
}

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err      *CategorizedError
		expected int
	}{
		{NewValidationError("city", "is required"), http.StatusBadRequest},
		{NewNotFoundError("user", "x"), http.StatusNotFound},
		{NewConflictError("dup"), http.StatusConflict},
		{NewRateLimitError(), http.StatusTooManyRequests},
		{NewProviderError("down", nil), http.StatusBadGateway},
		{NewTransportError("down", nil), http.StatusBadGateway},
		{NewDatabaseError("insert user", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.err.StatusCode, "status for %s", tt.err.Code)
	}
}
