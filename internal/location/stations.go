package location

import (
	"sort"

	"github.com/randytsao24/railronda/internal/models"
)

// FindNearby returns stations within a radius (meters) of a point. An
// interchange is listed once per line it serves.
func (t *Topology) FindNearby(at models.Coordinate, radiusMeters float64) []models.StationWithDistance {
	results := make([]models.StationWithDistance, 0)
	if !at.Valid() {
		return results
	}

	for _, s := range t.withDistances(at) {
		if s.DistanceMeters <= radiusMeters {
			results = append(results, s)
		}
	}
	return results
}

// FindClosest returns the N closest stations to a point
func (t *Topology) FindClosest(at models.Coordinate, limit int) []models.StationWithDistance {
	if !at.Valid() {
		return []models.StationWithDistance{}
	}

	results := t.withDistances(at)
	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	return results
}

// withDistances lists every located station sorted by distance from at
func (t *Topology) withDistances(at models.Coordinate) []models.StationWithDistance {
	var results []models.StationWithDistance

	for _, line := range t.lines {
		for i, station := range line.Stations {
			if station.Location == nil {
				continue
			}
			results = append(results, models.StationWithDistance{
				Station:        station,
				LineID:         line.ID,
				Index:          i,
				DistanceMeters: Distance(at, *station.Location),
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceMeters < results[j].DistanceMeters
	})

	return results
}
