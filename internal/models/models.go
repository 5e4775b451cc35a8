// Package models defines shared data types
package models

import "math"

// Coordinate is a WGS-84 point
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Valid reports whether the coordinate is finite and within lat/lng bounds
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Station is a stop on a rail line
type Station struct {
	Name        string      `json:"name" yaml:"name" validate:"required"`
	Code        string      `json:"code,omitempty" yaml:"code"`
	Interchange bool        `json:"interchange" yaml:"interchange"`
	Location    *Coordinate `json:"location,omitempty" yaml:"location"`
}

// Line is an ordered sequence of stations served by one rail service
type Line struct {
	ID       string    `json:"id" yaml:"id" validate:"required"`
	Name     string    `json:"name" yaml:"name" validate:"required"`
	Color    string    `json:"color,omitempty" yaml:"color"`
	Stations []Station `json:"stations" yaml:"stations" validate:"required,min=2,dive"`
}

// Gem is a point of interest near a station
type Gem struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Description    string   `json:"description,omitempty"`
	CO2Saved       string   `json:"co2_saved,omitempty"`
	Lat            float64  `json:"lat"`
	Lng            float64  `json:"lng"`
	NearestStation string   `json:"nearest_station,omitempty"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
	Line           string   `json:"line,omitempty"`
}

// Location returns the gem's coordinate
func (g Gem) Location() Coordinate {
	return Coordinate{Lat: g.Lat, Lng: g.Lng}
}

// StationWithDistance is a Station with distance from a reference point
type StationWithDistance struct {
	Station
	LineID         string  `json:"line_id"`
	Index          int     `json:"index"`
	DistanceMeters float64 `json:"distance_meters"`
}

// StepType classifies a leg of an itinerary
type StepType string

const (
	StepWalk     StepType = "walk"
	StepRide     StepType = "ride"
	StepTransfer StepType = "transfer"
)

// RouteStep is one narrated leg of a journey
type RouteStep struct {
	Instruction string   `json:"instruction"`
	TimeMins    int      `json:"time_mins"`
	Type        StepType `json:"type"`
}

// RouteResult is a planned itinerary from one station to a point near another
type RouteResult struct {
	StartStation       string      `json:"start_station"`
	EndStation         string      `json:"end_station"`
	Steps              []RouteStep `json:"steps"`
	TotalTransitMins   int         `json:"total_transit_mins"`
	WalkDistanceMeters int         `json:"walk_distance_meters"`
	WalkTimeMins       int         `json:"walk_time_mins"`
	TotalTimeMins      int         `json:"total_time_mins"`
}
