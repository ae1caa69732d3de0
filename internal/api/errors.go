package api

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/weather-alerts/internal/errors"
	"github.com/weather-alerts/internal/logging"
)

// ErrorBody is the error payload shape for all endpoints.
type ErrorBody struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, statusCode int, code, message string, details map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}

	json.NewEncoder(w).Encode(response)
}

// parseJSONBody parses JSON request body.
func parseJSONBody(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// Common error codes
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeConflict          = "CONFLICT"
	ErrCodeProviderError     = "PROVIDER_ERROR"
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// respondServiceError maps a service-layer error to an HTTP response.
// Internal details (database errors, causes) are logged but never exposed.
func respondServiceError(w http.ResponseWriter, err error) {
	categorized, ok := apperrors.AsCategorized(err)
	if !ok {
		logging.GetGlobalLogger().WithError(err).Error("Unhandled service error")
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "An internal error occurred", nil)
		return
	}

	switch categorized.Category {
	case apperrors.CategoryValidation:
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, categorized.Message, categorized.Details)
	case apperrors.CategoryNotFound:
		respondError(w, http.StatusNotFound, ErrCodeNotFound, categorized.Message, categorized.Details)
	case apperrors.CategoryConflict:
		respondError(w, http.StatusConflict, ErrCodeConflict, categorized.Message, categorized.Details)
	case apperrors.CategoryProvider, apperrors.CategoryTransport:
		respondError(w, http.StatusBadGateway, ErrCodeProviderError, categorized.Message, nil)
	case apperrors.CategoryRateLimit:
		respondError(w, http.StatusTooManyRequests, ErrCodeRateLimitExceeded, categorized.Message, nil)
	default:
		logging.GetGlobalLogger().WithError(err).Error("Internal service error")
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "An internal error occurred", nil)
	}
}
