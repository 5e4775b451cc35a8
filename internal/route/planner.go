// Package route plans rail itineraries between stations with a final walk
package route

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/randytsao24/railronda/internal/location"
	"github.com/randytsao24/railronda/internal/models"
)

var (
	// ErrInvalidStation is the sentinel wrapped by InvalidStationError
	ErrInvalidStation = errors.New("invalid station")

	// ErrNoInterchange is returned when two lines share no station to transfer at
	ErrNoInterchange = errors.New("no interchange between lines")
)

// InvalidStationError reports a station name that is on no known line
type InvalidStationError struct {
	Name string
}

func (e *InvalidStationError) Error() string {
	return fmt.Sprintf("station %q is not on any known line", e.Name)
}

func (e *InvalidStationError) Unwrap() error {
	return ErrInvalidStation
}

// Config holds the timing assumptions used for estimates. There is no
// timetable data behind them.
type Config struct {
	MinutesPerStop      int     `validate:"gt=0"`
	TransferMins        int     `validate:"gte=0"`
	WalkMetersPerMinute float64 `validate:"gt=0"`
}

// DefaultConfig returns 3 min per stop, a flat 5 min transfer and 80 m/min walking
func DefaultConfig() Config {
	return Config{
		MinutesPerStop:      3,
		TransferMins:        5,
		WalkMetersPerMinute: 80,
	}
}

// Planner builds itineraries over a station topology. It holds no mutable
// state and is safe for concurrent use.
type Planner struct {
	resolver *location.Resolver
	topology *location.Topology
	cfg      Config
}

// NewPlanner creates a planner after validating cfg
func NewPlanner(resolver *location.Resolver, cfg Config) (*Planner, error) {
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("route config: %w", err)
	}
	return &Planner{
		resolver: resolver,
		topology: resolver.Topology(),
		cfg:      cfg,
	}, nil
}

// Config returns the planner's timing parameters
func (p *Planner) Config() Config {
	return p.cfg
}

// Plan routes from start to end and then on foot from endStationLocation to
// destination. Station names are resolved first; a name on no known line
// yields an *InvalidStationError.
func (p *Planner) Plan(start, end string, destination, endStationLocation models.Coordinate) (*models.RouteResult, error) {
	if !destination.Valid() || !endStationLocation.Valid() {
		return nil, fmt.Errorf("plan route: %w", location.ErrInvalidCoordinate)
	}

	startName := p.resolver.Resolve(start)
	endName := p.resolver.Resolve(end)

	startLines := p.topology.LinesFor(startName)
	if len(startLines) == 0 {
		return nil, &InvalidStationError{Name: start}
	}
	endLines := p.topology.LinesFor(endName)
	if len(endLines) == 0 {
		return nil, &InvalidStationError{Name: end}
	}

	var steps []models.RouteStep

	switch {
	case location.NormalizeKey(startName) == location.NormalizeKey(endName):
		// already there

	case commonLine(startLines, endLines) != "":
		steps = append(steps, p.ride(commonLine(startLines, endLines), startName, endName))

	default:
		startLine, endLine, hub, ok := p.interchange(startLines, endLines)
		if !ok {
			return nil, fmt.Errorf("plan %s to %s: %w", startName, endName, ErrNoInterchange)
		}
		endLineName := endLine
		if line, ok := p.topology.Line(endLine); ok {
			endLineName = line.Name
		}

		steps = append(steps,
			p.ride(startLine, startName, hub.Name),
			models.RouteStep{
				Instruction: fmt.Sprintf("Transfer at %s to %s", hub.Name, endLineName),
				TimeMins:    p.cfg.TransferMins,
				Type:        models.StepTransfer,
			},
			p.ride(endLine, hub.Name, endName),
		)
	}

	transitMins := 0
	for _, step := range steps {
		transitMins += step.TimeMins
	}

	walkMeters := location.RoundMeters(location.Distance(endStationLocation, destination))
	walkMins := p.WalkMinutes(float64(walkMeters))
	steps = append(steps, models.RouteStep{
		Instruction: fmt.Sprintf("Walk to destination (%dm)", walkMeters),
		TimeMins:    walkMins,
		Type:        models.StepWalk,
	})

	return &models.RouteResult{
		StartStation:       startName,
		EndStation:         endName,
		Steps:              steps,
		TotalTransitMins:   transitMins,
		WalkDistanceMeters: walkMeters,
		WalkTimeMins:       walkMins,
		TotalTimeMins:      transitMins + walkMins,
	}, nil
}

// PlanTo is Plan with the end station's location taken from the topology
func (p *Planner) PlanTo(start, end string, destination models.Coordinate) (*models.RouteResult, error) {
	endName := p.resolver.Resolve(end)
	station, ok := p.topology.Station(endName)
	if !ok {
		return nil, &InvalidStationError{Name: end}
	}
	if station.Location == nil {
		return nil, fmt.Errorf("plan to %s: %w", endName, location.ErrNoStationLocation)
	}
	return p.Plan(start, endName, destination, *station.Location)
}

// WalkMinutes converts a walking distance to whole minutes, never less than one
func (p *Planner) WalkMinutes(meters float64) int {
	mins := int(math.Round(meters / p.cfg.WalkMetersPerMinute))
	if mins < 1 {
		return 1
	}
	return mins
}

func (p *Planner) ride(lineID, from, to string) models.RouteStep {
	line, _ := p.topology.Line(lineID)
	stops := p.topology.IndexOf(lineID, from) - p.topology.IndexOf(lineID, to)
	if stops < 0 {
		stops = -stops
	}
	return models.RouteStep{
		Instruction: fmt.Sprintf("Board %s to %s", line.Name, to),
		TimeMins:    stops * p.cfg.MinutesPerStop,
		Type:        models.StepRide,
	}
}

// interchange picks the first pair of lines, in load order, that share a station
func (p *Planner) interchange(startLines, endLines []string) (string, string, models.Station, bool) {
	for _, a := range startLines {
		for _, b := range endLines {
			if hub, ok := p.topology.SharedStation(a, b); ok {
				return a, b, hub, true
			}
		}
	}
	return "", "", models.Station{}, false
}

func commonLine(a, b []string) string {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return x
			}
		}
	}
	return ""
}
