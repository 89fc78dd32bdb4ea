package impl

import (
	"locator/internal/domain/entity"
	domainerrors "locator/internal/domain/errors"
	"locator/internal/usecase"

	"github.com/paulmach/orb"
)

// viewportFitter implements the ViewportFitter interface
type viewportFitter struct{}

// NewViewportFitter creates a new viewport fitter
func NewViewportFitter() usecase.ViewportFitter {
	return viewportFitter{}
}

// Fit returns the minimal axis-aligned box around coords with its midpoint as center.
// Padding is carried through untouched.
func (viewportFitter) Fit(coords []entity.Coordinate, padding entity.Padding) (entity.ViewportRegion, error) {
	if len(coords) == 0 {
		return entity.ViewportRegion{}, domainerrors.ErrEmptyCoordinateSet.WithCause(nil)
	}

	points := make(orb.MultiPoint, 0, len(coords))
	for _, c := range coords {
		points = append(points, c.Point())
	}

	bound := points.Bound()

	return entity.ViewportRegion{
		Center:    entity.CoordinateFromPoint(bound.Center()),
		NorthEast: entity.CoordinateFromPoint(bound.Max),
		SouthWest: entity.CoordinateFromPoint(bound.Min),
		Padding:   padding,
	}, nil
}
