// Package handlers contains HTTP request handlers
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Error encoding JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, errMsg, message string) {
	body := map[string]any{"error": errMsg}
	if message != "" {
		body["message"] = message
	}
	writeJSON(w, status, body)
}

func parseIntParam(r *http.Request, name string, defaultVal, min, max int) int {
	str := r.URL.Query().Get(name)
	if str == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(str)
	if err != nil {
		return defaultVal
	}

	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// parseFloatParam reads a required float query parameter
func parseFloatParam(r *http.Request, name string) (float64, bool) {
	str := r.URL.Query().Get(name)
	if str == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, false
	}
	return val, true
}
