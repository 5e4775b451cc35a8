package handlers

import (
	"errors"
	"net/http"

	"github.com/randytsao24/railronda/internal/location"
	"github.com/randytsao24/railronda/internal/models"
)

const (
	defaultStationRadius = 1000
	maxStationRadius     = 5000
	minStationRadius     = 50
	defaultStationLimit  = 5
	maxStationLimit      = 20
)

type StationHandler struct {
	topology *location.Topology
	resolver *location.Resolver
}

func NewStationHandler(resolver *location.Resolver) *StationHandler {
	return &StationHandler{
		topology: resolver.Topology(),
		resolver: resolver,
	}
}

// GetLines returns every line with its ordered stations
func (h *StationHandler) GetLines(w http.ResponseWriter, r *http.Request) {
	lines := h.topology.Lines()

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(lines),
		"lines":   lines,
	})
}

// GetLine returns a single line
func (h *StationHandler) GetLine(w http.ResponseWriter, r *http.Request) {
	lineID := r.PathValue("line")

	line, ok := h.topology.Line(lineID)
	if !ok {
		writeError(w, http.StatusNotFound, "Line not found", "Line "+lineID+" is not in the topology")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"line":    line,
	})
}

// ResolveStation maps a free-form name onto a canonical station
func (h *StationHandler) ResolveStation(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("name")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "name query parameter is required", "")
		return
	}

	name := h.resolver.Resolve(raw)
	lineIDs := h.topology.LinesFor(name)
	positions := make(map[string]int, len(lineIDs))
	for _, id := range lineIDs {
		positions[id] = h.topology.IndexOf(id, name)
	}

	resp := map[string]any{
		"success":   true,
		"input":     raw,
		"canonical": name,
		"known":     len(lineIDs) > 0,
		"lines":     lineIDs,
		"positions": positions,
	}
	if station, ok := h.topology.Station(name); ok {
		resp["station"] = station
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetNearestStation returns the station closest to lat/lng, optionally on one line
func (h *StationHandler) GetNearestStation(w http.ResponseWriter, r *http.Request) {
	at, ok := parseCoordinate(w, r, "lat", "lng")
	if !ok {
		return
	}

	nearest, err := h.topology.NearestStation(at, r.URL.Query().Get("line"))
	switch {
	case errors.Is(err, location.ErrUnknownLine):
		writeError(w, http.StatusNotFound, "Line not found", err.Error())
		return
	case err != nil:
		writeError(w, http.StatusUnprocessableEntity, "No station found", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"lat":     at.Lat,
		"lng":     at.Lng,
		"station": nearest,
	})
}

// GetNearbyStations returns stations within a radius, or the closest N when
// limit is given
func (h *StationHandler) GetNearbyStations(w http.ResponseWriter, r *http.Request) {
	at, ok := parseCoordinate(w, r, "lat", "lng")
	if !ok {
		return
	}

	var stations []models.StationWithDistance
	radius := parseIntParam(r, "radius", defaultStationRadius, minStationRadius, maxStationRadius)
	if r.URL.Query().Get("limit") != "" {
		limit := parseIntParam(r, "limit", defaultStationLimit, 1, maxStationLimit)
		stations = h.topology.FindClosest(at, limit)
	} else {
		stations = h.topology.FindNearby(at, float64(radius))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"lat":           at.Lat,
		"lng":           at.Lng,
		"radius_meters": radius,
		"stations":      stations,
		"count":         len(stations),
	})
}

// parseCoordinate reads a required coordinate pair, writing a 400 on failure
func parseCoordinate(w http.ResponseWriter, r *http.Request, latKey, lngKey string) (models.Coordinate, bool) {
	lat, okLat := parseFloatParam(r, latKey)
	lng, okLng := parseFloatParam(r, lngKey)
	if !okLat || !okLng {
		writeError(w, http.StatusBadRequest, latKey+" and "+lngKey+" query parameters are required", "")
		return models.Coordinate{}, false
	}

	at := models.Coordinate{Lat: lat, Lng: lng}
	if !at.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid coordinates", "lat must be within [-90,90] and lng within [-180,180]")
		return models.Coordinate{}, false
	}
	return at, true
}
