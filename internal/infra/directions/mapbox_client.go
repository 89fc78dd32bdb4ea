// Package directions implements the directions service against a Mapbox-compatible API.
package directions

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"locator/config"
	"locator/internal/domain/entity"
	"locator/internal/domain/lifecycle"
	"locator/internal/domain/service"
	"locator/internal/geo"

	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
)

const (
	codeOk = "Ok"

	// cap on error bodies kept for diagnostics
	maxErrorBody = 4 << 10
)

var tracer = otel.Tracer("locator/infra/directions")

// mapboxClient implements DirectionsService over HTTP
type mapboxClient struct {
	baseURL     string
	accessToken string
	profile     string
	format      geo.Format
	httpClient  *http.Client
	logger      *slog.Logger
}

type directionsResponse struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Routes  []struct {
		Geometry json.RawMessage `json:"geometry"`
		Distance float64         `json:"distance"`
		Duration float64         `json:"duration"`
	} `json:"routes"`
}

// ClientParams holds dependencies for the directions client, injected by Fx
type ClientParams struct {
	fx.In

	Config     *config.Config
	Logger     *slog.Logger
	HTTPClient *http.Client `optional:"true"`
}

// NewClient creates a directions client from the directions config section
func NewClient(params ClientParams) (service.DirectionsService, error) {
	cfg := params.Config.Directions
	if cfg == nil || strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("directions base URL is required")
	}

	format, err := geo.ParseFormat(cfg.Geometries)
	if err != nil {
		return nil, err
	}

	httpClient := params.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = lifecycle.DefaultExternalCallTimeout
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	return &mapboxClient{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		accessToken: cfg.AccessToken,
		profile:     strings.Trim(cfg.Profile, "/"),
		format:      format,
		httpClient:  httpClient,
		logger:      params.Logger,
	}, nil
}

// Directions requests a single full-overview route without alternatives
func (c *mapboxClient) Directions(ctx context.Context, origin, destination entity.Coordinate) (*service.DirectionsResponse, error) {
	ctx, span := tracer.Start(ctx, "directions.request", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String("directions.profile", c.profile),
		attribute.String("directions.geometries", string(c.format)),
	)

	endpoint, err := c.endpoint(origin, destination)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)

		return nil, errors.Wrap(err, "directions request failed")
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		err := errors.Errorf("directions service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		span.RecordError(err)

		return nil, err
	}

	var payload directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		span.RecordError(err)

		return nil, errors.Wrap(err, "failed to decode directions response")
	}

	if payload.Code != "" && payload.Code != codeOk {
		err := errors.Errorf("directions service answered %s: %s", payload.Code, payload.Message)
		span.RecordError(err)

		return nil, err
	}

	result := &service.DirectionsResponse{
		Format: c.format,
		Routes: make([]service.DirectionsRoute, 0, len(payload.Routes)),
	}
	for _, route := range payload.Routes {
		result.Routes = append(result.Routes, service.DirectionsRoute{
			Geometry:        route.Geometry,
			DistanceMeters:  route.Distance,
			DurationSeconds: route.Duration,
		})
	}

	span.SetAttributes(attribute.Int("directions.routes", len(result.Routes)))
	c.logger.DebugContext(ctx, "Directions resolved",
		slog.String("origin", origin.String()),
		slog.String("destination", destination.String()),
		slog.Int("routes", len(result.Routes)),
	)

	return result, nil
}

// endpoint builds {base}/directions/v5/{profile}/{lng,lat};{lng,lat}?...
func (c *mapboxClient) endpoint(origin, destination entity.Coordinate) (string, error) {
	u, err := url.Parse(c.baseURL + "/directions/v5/" + c.profile + "/" + origin.LngLat() + ";" + destination.LngLat())
	if err != nil {
		return "", errors.Wrap(err, "invalid directions URL")
	}

	query := url.Values{}
	query.Set("geometries", string(c.format))
	query.Set("overview", "full")
	query.Set("alternatives", "false")
	if c.accessToken != "" {
		query.Set("access_token", c.accessToken)
	}
	u.RawQuery = query.Encode()

	return u.String(), nil
}
