package platform

import (
	"context"

	"locator/internal/domain/entity"
	domainerrors "locator/internal/domain/errors"
)

// staticDevice answers every prompt and position request from configuration
type staticDevice struct {
	granted    bool
	coordinate entity.Coordinate
}

func (d *staticDevice) RequestForegroundPermission(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	return d.granted, nil
}

func (d *staticDevice) CurrentPosition(ctx context.Context) (entity.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return entity.Coordinate{}, err
	}
	if !d.granted {
		return entity.Coordinate{}, domainerrors.ErrPermissionDenied.WrapMessage("static device has no location permission")
	}

	return d.coordinate, nil
}
