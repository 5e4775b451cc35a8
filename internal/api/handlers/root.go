package handlers

import (
	"net/http"
)

// Version is reported by the root and health endpoints
const Version = "1.0.0"

type RootHandler struct{}

func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

func (h *RootHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        "railronda",
		"description": "Nearby gems and rail itineraries for the Klang Valley",
		"version":     Version,
		"endpoints": map[string]string{
			"GET /":                                         "API information",
			"GET /health":                                   "Health check",
			"GET /api/lines":                                "All lines with their stations",
			"GET /api/lines/{line}":                         "One line",
			"GET /api/lines/{line}/stations/{station}/gems": "Gems scoped to a station",
			"GET /api/stations/resolve?name=":               "Canonical station name",
			"GET /api/stations/nearest?lat=&lng=":           "Nearest station to a point",
			"GET /api/stations/nearby?lat=&lng=":            "Stations within a radius",
			"GET /api/route?from=&to=&lat=&lng=":            "Itinerary to a destination",
			"GET /api/search?from=&q=":                      "Search gems across lines with routes",
		},
	})
}

func (h *RootHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"error":   "Route not found",
		"message": "Check the root endpoint (/) for available routes",
	})
}
