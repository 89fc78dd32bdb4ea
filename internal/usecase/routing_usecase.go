package usecase

import (
	"context"

	"locator/internal/domain/entity"
)

// RouteResolver resolves a single driving route between two coordinates.
type RouteResolver interface {
	// Resolve returns ErrRouteResolutionFailed for transport errors, non-success responses,
	// an empty route list and malformed geometry alike.
	Resolve(ctx context.Context, origin, destination entity.Coordinate) (*entity.RouteResult, error)
}

// ViewportFitter computes the camera region that frames a coordinate sequence.
type ViewportFitter interface {
	// Fit returns ErrEmptyCoordinateSet for an empty sequence
	Fit(coords []entity.Coordinate, padding entity.Padding) (entity.ViewportRegion, error)
}
