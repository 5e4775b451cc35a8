package main

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/randytsao24/railronda/internal/config"
	"github.com/randytsao24/railronda/internal/location"
	"github.com/randytsao24/railronda/internal/route"
)

// core bundles the read-only components every command needs
type core struct {
	cfg      *config.Config
	resolver *location.Resolver
	planner  *route.Planner
}

func loadCore() (*core, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	var topology *location.Topology
	if cfg.TopologyFile != "" {
		topology, err = location.LoadTopology(cfg.TopologyFile)
	} else {
		topology, err = location.DefaultTopology()
	}
	if err != nil {
		return nil, err
	}
	log.Debug().
		Int("lines", len(topology.Lines())).
		Int("stations", topology.StationCount()).
		Str("file", cfg.TopologyFile).
		Msg("Loaded station topology")

	resolver := location.NewResolver(topology)
	planner, err := route.NewPlanner(resolver, cfg.Route)
	if err != nil {
		return nil, err
	}

	return &core{cfg: cfg, resolver: resolver, planner: planner}, nil
}
