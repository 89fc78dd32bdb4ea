package impl

import (
	"context"
	"log/slog"
	"time"

	"locator/internal/domain/entity"
	domainerrors "locator/internal/domain/errors"
	"locator/internal/domain/lifecycle"
	"locator/internal/domain/service"
	"locator/internal/usecase"
)

// locationSource implements the LocationSource interface on top of a session's PermissionGate.
type locationSource struct {
	gate     usecase.PermissionGate
	provider service.PositionProvider
	timeout  time.Duration
	logger   *slog.Logger
}

// NewLocationSource creates a LocationSource that reads provider only while gate is Granted.
func NewLocationSource(gate usecase.PermissionGate, provider service.PositionProvider, timeout time.Duration, logger *slog.Logger) usecase.LocationSource {
	if timeout <= 0 {
		timeout = lifecycle.DefaultExternalCallTimeout
	}

	return &locationSource{
		gate:     gate,
		provider: provider,
		timeout:  timeout,
		logger:   loggerOrDiscard(logger),
	}
}

// CurrentCoordinate acquires a fresh coordinate. Nothing is cached between calls.
func (s *locationSource) CurrentCoordinate(ctx context.Context) (entity.Coordinate, error) {
	if state := s.gate.CurrentState(); state != entity.PermissionGranted {
		cause := domainerrors.ErrPermissionDenied.WrapMessage("permission state " + state.String())

		return entity.Coordinate{}, domainerrors.ErrLocationUnavailable.WithCause(cause)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	coordinate, err := s.provider.CurrentPosition(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Position request failed", slog.Any("error", err))

		return entity.Coordinate{}, domainerrors.ErrLocationUnavailable.WithCause(err)
	}

	if !coordinate.Valid() {
		s.logger.WarnContext(ctx, "Platform returned an invalid coordinate",
			slog.Float64("latitude", coordinate.Latitude),
			slog.Float64("longitude", coordinate.Longitude),
		)

		return entity.Coordinate{}, domainerrors.ErrLocationUnavailable.WithCause(entity.ErrInvalidCoordinate)
	}

	return coordinate, nil
}
