package handlers

import (
	"net/http"
	"time"

	"github.com/randytsao24/railronda/internal/location"
)

type HealthHandler struct {
	startTime time.Time
	topology  *location.Topology
}

func NewHealthHandler(topology *location.Topology) *HealthHandler {
	return &HealthHandler{startTime: time.Now(), topology: topology}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
		"uptime":    time.Since(h.startTime).String(),
		"lines":     len(h.topology.Lines()),
		"stations":  h.topology.StationCount(),
	})
}
