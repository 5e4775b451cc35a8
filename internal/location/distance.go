package location

import (
	"math"

	"github.com/randytsao24/railronda/internal/models"
)

const earthRadiusMeters = 6371000

// Haversine calculates the distance in meters between two lat/lng points
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Distance is Haversine over two coordinates
func Distance(a, b models.Coordinate) float64 {
	return Haversine(a.Lat, a.Lng, b.Lat, b.Lng)
}

// RoundMeters rounds a distance to the nearest whole meter for display
func RoundMeters(meters float64) int {
	return int(math.Round(meters))
}
