package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/weather-alerts/internal/service"
)

// handleRegisterUser handles POST /api/users - Register a new user
func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterInput
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	user, err := s.userService.Register(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// handleListUsers handles GET /api/users - List all users
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.userService.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"users": users,
		"count": len(users),
	})
}

// handleGetUser handles GET /api/users/:id - Get user with preferences
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	result, err := s.userService.Get(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// handleGetPreferences handles GET /api/users/:id/preferences
func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	prefs, err := s.userService.GetPreferences(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, prefs)
}

// handleUpdatePreferences handles PUT /api/users/:id/preferences - Replace
// all preference fields
func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	var req service.UpdatePreferencesInput
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	prefs, err := s.userService.UpdatePreferences(r.Context(), userID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, prefs)
}
