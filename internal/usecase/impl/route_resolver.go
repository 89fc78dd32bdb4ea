package impl

import (
	"context"
	"log/slog"
	"math"
	"time"

	"locator/config"
	"locator/internal/domain/entity"
	domainerrors "locator/internal/domain/errors"
	"locator/internal/domain/lifecycle"
	"locator/internal/domain/service"
	"locator/internal/errors"
	"locator/internal/geo"
	"locator/internal/usecase"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/fx"
)

var (
	resolverTracer = otel.Tracer("locator/usecase/routing")

	errNoRoutes       = errors.New("directions response has no routes")
	errInvalidMetrics = errors.New("route distance or duration is not a finite non-negative number")
)

// routeResolver implements the RouteResolver interface
type routeResolver struct {
	directions service.DirectionsService
	timeout    time.Duration
	logger     *slog.Logger
}

// RouteResolverParams holds dependencies for RouteResolver, injected by Fx.
type RouteResolverParams struct {
	fx.In

	Directions service.DirectionsService
	Config     *config.Config `optional:"true"`
	Logger     *slog.Logger   `optional:"true"`
}

// NewRouteResolver creates a new route resolver instance
func NewRouteResolver(params RouteResolverParams) usecase.RouteResolver {
	timeout := lifecycle.DefaultExternalCallTimeout
	if params.Config != nil && params.Config.Directions != nil && params.Config.Directions.Timeout > 0 {
		timeout = params.Config.Directions.Timeout
	}

	return &routeResolver{
		directions: params.Directions,
		timeout:    timeout,
		logger:     loggerOrDiscard(params.Logger),
	}
}

// Resolve requests a driving route and derives kilometers and minutes from the first route.
func (r *routeResolver) Resolve(ctx context.Context, origin, destination entity.Coordinate) (*entity.RouteResult, error) {
	ctx, span := resolverTracer.Start(ctx, "RouteResolver.Resolve")
	defer span.End()

	span.SetAttributes(
		attribute.String("route.origin", origin.String()),
		attribute.String("route.destination", destination.String()),
	)

	result, err := r.resolve(ctx, origin, destination)
	if err != nil {
		span.RecordError(err)
		r.logger.DebugContext(ctx, "Route resolution failed",
			slog.String("origin", origin.String()),
			slog.String("destination", destination.String()),
			slog.Any("error", err),
		)

		return nil, domainerrors.ErrRouteResolutionFailed.WithCause(err)
	}

	span.SetAttributes(
		attribute.Float64("route.distance_km", result.DistanceKm),
		attribute.Int("route.points", len(result.Polyline)),
	)

	return result, nil
}

func (r *routeResolver) resolve(ctx context.Context, origin, destination entity.Coordinate) (*entity.RouteResult, error) {
	if !origin.Valid() || !destination.Valid() {
		return nil, errors.WithStack(entity.ErrInvalidCoordinate)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.directions.Directions(ctx, origin, destination)
	if err != nil {
		return nil, errors.Wrap(err, "directions request failed")
	}

	if resp == nil || len(resp.Routes) == 0 {
		return nil, errors.WithStack(errNoRoutes)
	}

	route := resp.Routes[0]
	if !finiteNonNegative(route.DistanceMeters) || !finiteNonNegative(route.DurationSeconds) {
		return nil, errors.WithStack(errInvalidMetrics)
	}

	polyline, err := geo.DecodeLineString(route.Geometry, resp.Format)
	if err != nil {
		return nil, errors.Wrap(err, "malformed route geometry")
	}

	return &entity.RouteResult{
		Polyline:    polyline,
		DistanceKm:  route.DistanceMeters / 1000,
		DurationMin: route.DurationSeconds / 60,
	}, nil
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
