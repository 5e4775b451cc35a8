package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/randytsao24/railronda/internal/location"
	"github.com/randytsao24/railronda/internal/models"
	"github.com/randytsao24/railronda/internal/route"
)

const (
	minGemRadius = 100
	maxGemRadius = 10000
)

// scopedGem is a gem annotated with its distance and walk time from the station
type scopedGem struct {
	models.Gem
	StationDistanceMeters *int `json:"station_distance_meters,omitempty"`
	WalkMinutes           *int `json:"walk_minutes,omitempty"`
}

type JourneyHandler struct {
	gems          GemProvider
	resolver      *location.Resolver
	topology      *location.Topology
	planner       *route.Planner
	defaultRadius int
	searchLimit   int
}

func NewJourneyHandler(gems GemProvider, planner *route.Planner, resolver *location.Resolver, defaultRadius float64, searchLimit int) *JourneyHandler {
	return &JourneyHandler{
		gems:          gems,
		resolver:      resolver,
		topology:      resolver.Topology(),
		planner:       planner,
		defaultRadius: int(defaultRadius),
		searchLimit:   searchLimit,
	}
}

// GetStationGems returns the gems scoped to a station on a line
func (h *JourneyHandler) GetStationGems(w http.ResponseWriter, r *http.Request) {
	lineID := r.PathValue("line")
	if _, ok := h.topology.Line(lineID); !ok {
		writeError(w, http.StatusNotFound, "Line not found", "Line "+lineID+" is not in the topology")
		return
	}

	station := h.resolver.Resolve(r.PathValue("station"))
	if h.topology.IndexOf(lineID, station) < 0 {
		writeError(w, http.StatusNotFound, "Station not found", station+" is not on line "+lineID)
		return
	}

	gems, err := h.gems.GemsForLine(r.Context(), lineID)
	if err != nil {
		writeGemError(w, err)
		return
	}

	var at *models.Coordinate
	if s, ok := h.topology.Station(station); ok && s.Location != nil {
		at = s.Location
	} else if center, ok := location.Centroid(gems); ok {
		at = &center
	}

	radius := parseIntParam(r, "radius", h.defaultRadius, minGemRadius, maxGemRadius)
	scoped := h.resolver.ScopeToStation(gems, station, at, float64(radius))
	scoped = location.FilterByCategory(scoped, r.URL.Query().Get("category"))
	if ids := r.URL.Query().Get("ids"); ids != "" {
		scoped = location.SelectByIDs(scoped, strings.Split(ids, ","))
	}

	results := make([]scopedGem, 0, len(scoped))
	for _, gem := range scoped {
		item := scopedGem{Gem: gem}
		if at != nil && gem.Location().Valid() {
			meters := location.RoundMeters(location.Distance(*at, gem.Location()))
			mins := h.planner.WalkMinutes(float64(meters))
			item.StationDistanceMeters = &meters
			item.WalkMinutes = &mins
		}
		results = append(results, item)
	}

	resp := map[string]any{
		"success":       true,
		"line":          lineID,
		"station":       station,
		"radius_meters": radius,
		"gems":          results,
		"count":         len(results),
	}
	if at != nil {
		resp["location"] = at
	}
	writeJSON(w, http.StatusOK, resp)
}

// PlanRoute returns an itinerary from one station to a destination near another
func (h *JourneyHandler) PlanRoute(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "from and to query parameters are required", "")
		return
	}

	destination, ok := parseCoordinate(w, r, "lat", "lng")
	if !ok {
		return
	}

	var endLocation models.Coordinate
	if r.URL.Query().Get("end_lat") != "" || r.URL.Query().Get("end_lng") != "" {
		endLocation, ok = parseCoordinate(w, r, "end_lat", "end_lng")
		if !ok {
			return
		}
	} else if s, found := h.topology.Station(h.resolver.Resolve(to)); found && s.Location != nil {
		endLocation = *s.Location
	} else if found {
		writeError(w, http.StatusBadRequest, "End station has no known location", "Pass end_lat and end_lng")
		return
	}

	result, err := h.planner.Plan(from, to, destination, endLocation)
	if err != nil {
		writeRouteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"route":   result,
	})
}

// Search finds gems across every line and routes to each from a start station
func (h *JourneyHandler) Search(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	if from == "" {
		writeError(w, http.StatusBadRequest, "from query parameter is required", "")
		return
	}

	order, err := route.ParseSortOrder(r.URL.Query().Get("sort"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid sort", "sort must be best, fastest or nearest")
		return
	}
	limit := parseIntParam(r, "limit", h.searchLimit, 1, h.searchLimit)

	gems, err := h.gems.AllGems(r.Context())
	if err != nil {
		writeGemError(w, err)
		return
	}

	query := r.URL.Query().Get("q")
	results, err := h.planner.Search(from, gems, query, order, limit)
	if err != nil {
		writeRouteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"from":    h.resolver.Resolve(from),
		"query":   query,
		"sort":    order,
		"results": results,
		"count":   len(results),
	})
}

func writeRouteError(w http.ResponseWriter, err error) {
	var invalid *route.InvalidStationError
	switch {
	case errors.As(err, &invalid):
		writeError(w, http.StatusNotFound, "Station not found", err.Error())
	case errors.Is(err, route.ErrNoInterchange):
		writeError(w, http.StatusUnprocessableEntity, "No interchange between lines", err.Error())
	case errors.Is(err, location.ErrInvalidCoordinate):
		writeError(w, http.StatusBadRequest, "Invalid coordinates", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "Failed to plan route", err.Error())
	}
}

func writeGemError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, location.ErrGemDataMissing):
		writeError(w, http.StatusServiceUnavailable, "Gem data unavailable", err.Error())
	case errors.Is(err, location.ErrUnknownLine):
		writeError(w, http.StatusNotFound, "Line not found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "Failed to load gems", err.Error())
	}
}
