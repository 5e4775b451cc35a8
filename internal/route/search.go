package route

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/randytsao24/railronda/internal/models"
)

// DefaultSearchLimit caps the number of search results returned
const DefaultSearchLimit = 10

// ErrInvalidSort is returned for an unknown sort order
var ErrInvalidSort = errors.New("invalid sort order")

// SortOrder ranks search results
type SortOrder string

const (
	SortBest    SortOrder = "best"
	SortFastest SortOrder = "fastest"
	SortNearest SortOrder = "nearest"
)

// ParseSortOrder accepts "", best, fastest and nearest
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortBest:
		return SortBest, nil
	case SortFastest:
		return SortFastest, nil
	case SortNearest:
		return SortNearest, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrInvalidSort)
}

// SearchResult pairs a gem with the itinerary that reaches it
type SearchResult struct {
	Gem     models.Gem          `json:"gem"`
	Station string              `json:"station"`
	Route   *models.RouteResult `json:"route"`
}

// Search finds gems whose name, category or description contains query and
// plans a route from start to each. Gems are reached through their tagged
// station when it is known, otherwise through the nearest station on their
// line. Gems that cannot be placed on the network are skipped.
func (p *Planner) Search(start string, gems []models.Gem, query string, order SortOrder, limit int) ([]SearchResult, error) {
	if !p.resolver.Known(start) {
		return nil, &InvalidStationError{Name: start}
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	results := make([]SearchResult, 0)

	for _, gem := range gems {
		if needle != "" && !gemContains(gem, needle) {
			continue
		}

		station, err := p.stationFor(gem)
		if err != nil {
			log.Debug().Err(err).Str("gem", gem.ID).Msg("Skipping gem with no reachable station")
			continue
		}

		result, err := p.PlanTo(start, station, gem.Location())
		if err != nil {
			log.Debug().Err(err).Str("gem", gem.ID).Str("station", station).Msg("Skipping unroutable gem")
			continue
		}

		results = append(results, SearchResult{Gem: gem, Station: result.EndStation, Route: result})
	}

	switch order {
	case SortFastest:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Route.TotalTimeMins < results[j].Route.TotalTimeMins
		})
	case SortNearest:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Route.WalkDistanceMeters < results[j].Route.WalkDistanceMeters
		})
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// stationFor places a gem on the network
func (p *Planner) stationFor(gem models.Gem) (string, error) {
	if gem.NearestStation != "" && p.resolver.Known(gem.NearestStation) {
		return p.resolver.Resolve(gem.NearestStation), nil
	}

	lineID := gem.Line
	if _, ok := p.topology.Line(lineID); !ok {
		lineID = ""
	}
	nearest, err := p.topology.NearestStation(gem.Location(), lineID)
	if err != nil {
		return "", err
	}
	return nearest.Name, nil
}

func gemContains(gem models.Gem, needle string) bool {
	return strings.Contains(strings.ToLower(gem.Name), needle) ||
		strings.Contains(strings.ReplaceAll(gem.Category, "_", " "), needle) ||
		strings.Contains(gem.Category, needle) ||
		strings.Contains(strings.ToLower(gem.Description), needle)
}
