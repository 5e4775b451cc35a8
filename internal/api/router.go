package api

import (
	"net/http"

	"github.com/randytsao24/railronda/internal/api/handlers"
	"github.com/randytsao24/railronda/internal/config"
	"github.com/randytsao24/railronda/internal/location"
	"github.com/randytsao24/railronda/internal/route"
)

// NewRouter creates and configures the HTTP router with all routes and middleware
func NewRouter(
	cfg *config.Config,
	resolver *location.Resolver,
	planner *route.Planner,
	gems handlers.GemProvider,
) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(resolver.Topology())
	rootHandler := handlers.NewRootHandler()
	stationHandler := handlers.NewStationHandler(resolver)
	journeyHandler := handlers.NewJourneyHandler(gems, planner, resolver, cfg.GemRadiusMeters, cfg.SearchLimit)

	mux.HandleFunc("GET /{$}", rootHandler.Index)
	mux.HandleFunc("/", rootHandler.NotFound)

	// Core routes
	mux.HandleFunc("GET /api", rootHandler.Index)
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Topology and station lookups
	mux.HandleFunc("GET /api/lines", stationHandler.GetLines)
	mux.HandleFunc("GET /api/lines/{line}", stationHandler.GetLine)
	mux.HandleFunc("GET /api/stations/resolve", stationHandler.ResolveStation)
	mux.HandleFunc("GET /api/stations/nearest", stationHandler.GetNearestStation)
	mux.HandleFunc("GET /api/stations/nearby", stationHandler.GetNearbyStations)

	// Gems and itineraries
	mux.HandleFunc("GET /api/lines/{line}/stations/{station}/gems", journeyHandler.GetStationGems)
	mux.HandleFunc("GET /api/route", journeyHandler.PlanRoute)
	mux.HandleFunc("GET /api/search", journeyHandler.Search)

	// Apply middleware stack
	handler := Chain(mux,
		Recovery,
		Logging,
		CORS,
		Timeout(cfg.HTTPTimeout),
	)

	return handler
}
