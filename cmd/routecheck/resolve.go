package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"locator/config"
	"locator/internal/domain/entity"
	"locator/internal/infra/directions"
	"locator/internal/usecase/impl"
	"locator/internal/util"

	"github.com/pkg/errors"
)

func runResolve(ctx context.Context, out io.Writer, from, to string, jsonMode bool) error {
	origin, err := parseCoordinate(from)
	if err != nil {
		return errors.Wrap(err, "invalid --from")
	}
	destination, err := parseCoordinate(to)
	if err != nil {
		return errors.Wrap(err, "invalid --to")
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	client, err := directions.NewClient(directions.ClientParams{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}

	resolver := impl.NewRouteResolver(impl.RouteResolverParams{Directions: client, Config: cfg, Logger: logger})
	route, err := resolver.Resolve(ctx, origin, destination)
	if err != nil {
		return err
	}

	region, err := impl.NewViewportFitter().Fit(append(route.Polyline, origin, destination), cfg.Viewport.Padding)
	if err != nil {
		return err
	}

	if jsonMode {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		return errors.WithStack(encoder.Encode(map[string]any{
			"route":  route,
			"region": region,
		}))
	}

	fmt.Fprintf(out, "Distance: %s (%.3f km)\n", util.FormatDistance(route.DistanceKm), route.DistanceKm)
	fmt.Fprintf(out, "ETA:      %s (%.2f min)\n", util.FormatETA(route.DurationMin), route.DurationMin)
	fmt.Fprintf(out, "Points:   %d\n", len(route.Polyline))
	fmt.Fprintf(out, "Center:   %s\n", region.Center)
	fmt.Fprintf(out, "Bounds:   %s .. %s\n", region.SouthWest, region.NorthEast)

	return nil
}

// parseCoordinate parses "lat,lng"
func parseCoordinate(raw string) (entity.Coordinate, error) {
	latRaw, lngRaw, found := strings.Cut(raw, ",")
	if !found {
		return entity.Coordinate{}, errors.Errorf("expected lat,lng, got %q", raw)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latRaw), 64)
	if err != nil {
		return entity.Coordinate{}, errors.Wrap(err, "latitude")
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngRaw), 64)
	if err != nil {
		return entity.Coordinate{}, errors.Wrap(err, "longitude")
	}

	coordinate, err := entity.NewCoordinate(lat, lng)

	return coordinate, errors.WithStack(err)
}
