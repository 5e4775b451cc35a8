package location

import "errors"

var (
	// ErrInvalidCoordinate is returned for NaN, infinite or out-of-range coordinates
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrNoStationLocation is returned when no candidate station has coordinates
	ErrNoStationLocation = errors.New("no station with a known location")
)
