package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// handleCurrentWeather handles GET /api/weather/current/:city - Latest stored
// reading for a city
func (s *Server) handleCurrentWeather(w http.ResponseWriter, r *http.Request) {
	city := mux.Vars(r)["city"]

	reading, err := s.weatherService.Current(r.Context(), city)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, reading)
}

// handleWeatherHistory handles GET /api/weather/history/:city?limit=N -
// Recent readings for a city, newest first
func (s *Server) handleWeatherHistory(w http.ResponseWriter, r *http.Request) {
	city := mux.Vars(r)["city"]

	limit, err := parseLimit(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "limit must be a positive integer", nil)
		return
	}

	readings, err := s.weatherService.History(r.Context(), city, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"city":     city,
		"readings": readings,
		"count":    len(readings),
	})
}

// handleTriggerFetch handles POST /api/weather/fetch - Run a fetch and alert
// cycle synchronously. Returns 409 when a cycle is already in flight.
func (s *Server) handleTriggerFetch(w http.ResponseWriter, r *http.Request) {
	result, err := s.pipelineRunner.RunCycle(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// parseLimit reads the optional limit query parameter. Zero means unset.
func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("invalid limit %q", raw)
	}
	return limit, nil
}
