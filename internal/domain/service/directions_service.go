package service

import (
	"context"
	"encoding/json"

	"locator/internal/domain/entity"
	"locator/internal/geo"
)

// DirectionsRoute is one route as returned by a directions service, before decoding
type DirectionsRoute struct {
	Geometry        json.RawMessage
	DistanceMeters  float64
	DurationSeconds float64
}

// DirectionsResponse carries the routes of one directions request in service order
type DirectionsResponse struct {
	Format geo.Format
	Routes []DirectionsRoute
}

// DirectionsService requests a driving route between two coordinates
type DirectionsService interface {
	// Directions returns the raw response; an empty Routes slice is not an error at this layer
	Directions(ctx context.Context, origin, destination entity.Coordinate) (*DirectionsResponse, error)
}
