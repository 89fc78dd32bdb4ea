package entity

import (
	"errors"
	"math"
	"strconv"

	"github.com/paulmach/orb"
)

// ErrInvalidCoordinate is returned when a latitude/longitude pair falls outside the valid range
var ErrInvalidCoordinate = errors.New("coordinate out of range")

// Coordinate is an immutable WGS84 position
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewCoordinate validates and builds a Coordinate
func NewCoordinate(latitude, longitude float64) (Coordinate, error) {
	c := Coordinate{Latitude: latitude, Longitude: longitude}
	if !c.Valid() {
		return Coordinate{}, ErrInvalidCoordinate
	}

	return c, nil
}

// Valid reports whether latitude is within [-90, 90] and longitude within [-180, 180]
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) ||
		math.IsInf(c.Latitude, 0) || math.IsInf(c.Longitude, 0) {
		return false
	}

	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// Point converts the coordinate to an orb.Point, which is longitude-first
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

// CoordinateFromPoint converts a longitude-first orb.Point back to a Coordinate
func CoordinateFromPoint(p orb.Point) Coordinate {
	return Coordinate{Latitude: p.Lat(), Longitude: p.Lon()}
}

// LngLat formats the coordinate as "lng,lat", the waypoint form used by directions services
func (c Coordinate) LngLat() string {
	return strconv.FormatFloat(c.Longitude, 'f', -1, 64) + "," + strconv.FormatFloat(c.Latitude, 'f', -1, 64)
}

func (c Coordinate) String() string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}
