package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// handleListUserAlerts handles GET /api/users/:id/alerts?limit=N - A user's
// sent alerts, newest first
func (s *Server) handleListUserAlerts(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	limit, err := parseLimit(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "limit must be a positive integer", nil)
		return
	}

	alerts, err := s.alertService.ListForUser(r.Context(), userID, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

// handleListAlerts handles GET /api/alerts?limit=N - Recent alerts across all
// users
func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "limit must be a positive integer", nil)
		return
	}

	alerts, err := s.alertService.ListAll(r.Context(), limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"alerts": alerts,
		"count":  len(alerts),
	})
}
