package location

import (
	"strings"

	"github.com/randytsao24/railronda/internal/models"
)

// DefaultGemRadius is the distance fallback radius used when gems carry no
// station tags
const DefaultGemRadius = 2000

// ScopeToStation returns the gems that belong to a station.
//
// When any gem carries a nearest-station tag, only tag matches are returned,
// even if that leaves nothing: a tagged dataset is never widened by distance.
// Untagged datasets fall back to a radius search around at. Input order is
// preserved and the result is never nil.
func (r *Resolver) ScopeToStation(gems []models.Gem, station string, at *models.Coordinate, radiusMeters float64) []models.Gem {
	result := make([]models.Gem, 0)
	if len(gems) == 0 {
		return result
	}

	if hasStationTags(gems) {
		target := r.Key(station)
		for _, gem := range gems {
			if gem.NearestStation == "" {
				continue
			}
			if matchKeys(r.Key(gem.NearestStation), target) {
				result = append(result, gem)
			}
		}
		return result
	}

	if at == nil || !at.Valid() {
		return result
	}

	for _, gem := range gems {
		loc := gem.Location()
		if !loc.Valid() {
			continue
		}
		if Distance(*at, loc) <= radiusMeters {
			result = append(result, gem)
		}
	}
	return result
}

func hasStationTags(gems []models.Gem) bool {
	for _, gem := range gems {
		if gem.NearestStation != "" {
			return true
		}
	}
	return false
}

// FilterByCategory keeps gems of one category; "" and "all" keep everything
func FilterByCategory(gems []models.Gem, category string) []models.Gem {
	category = NormalizeCategory(category)
	if category == "" || category == "all" {
		return gems
	}

	result := make([]models.Gem, 0, len(gems))
	for _, gem := range gems {
		if gem.Category == category {
			result = append(result, gem)
		}
	}
	return result
}

// NormalizeCategory lower-cases a category and joins words with underscores
func NormalizeCategory(category string) string {
	return strings.Join(strings.Fields(strings.ToLower(category)), "_")
}

// Centroid averages the coordinates of gems with valid locations
func Centroid(gems []models.Gem) (models.Coordinate, bool) {
	var sum models.Coordinate
	n := 0
	for _, gem := range gems {
		loc := gem.Location()
		if !loc.Valid() {
			continue
		}
		sum.Lat += loc.Lat
		sum.Lng += loc.Lng
		n++
	}
	if n == 0 {
		return models.Coordinate{}, false
	}
	return models.Coordinate{Lat: sum.Lat / float64(n), Lng: sum.Lng / float64(n)}, true
}

// SelectByIDs looks up externally suggested ids, keeping the requested order
// and discarding ids that are not in gems
func SelectByIDs(gems []models.Gem, ids []string) []models.Gem {
	byID := make(map[string]models.Gem, len(gems))
	for _, gem := range gems {
		byID[gem.ID] = gem
	}

	result := make([]models.Gem, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if seen[id] {
			continue
		}
		if gem, ok := byID[id]; ok {
			result = append(result, gem)
			seen[id] = true
		}
	}
	return result
}
