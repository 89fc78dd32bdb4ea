package directions

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"locator/config"
	"locator/internal/domain/entity"
	"locator/internal/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	origin      = entity.Coordinate{Latitude: 13.621, Longitude: 123.194}
	destination = entity.Coordinate{Latitude: 13.63, Longitude: 123.205}
)

func newTestClient(t *testing.T, serverURL, geometries string) *mapboxClient {
	t.Helper()

	client, err := NewClient(ClientParams{
		Config: &config.Config{Directions: &config.DirectionsConfig{
			BaseURL:     serverURL,
			AccessToken: "pk.test",
			Profile:     "mapbox/driving",
			Geometries:  geometries,
		}},
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		HTTPClient: http.DefaultClient,
	})
	require.NoError(t, err)

	return client.(*mapboxClient)
}

func TestMapboxClient_Directions_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/directions/v5/mapbox/driving/123.194,13.621;123.205,13.63", r.URL.Path)
		assert.Equal(t, "geojson", r.URL.Query().Get("geometries"))
		assert.Equal(t, "full", r.URL.Query().Get("overview"))
		assert.Equal(t, "false", r.URL.Query().Get("alternatives"))
		assert.Equal(t, "pk.test", r.URL.Query().Get("access_token"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": "Ok",
			"routes": [{
				"geometry": {"type": "LineString", "coordinates": [[123.194, 13.621], [123.205, 13.63]]},
				"distance": 1500,
				"duration": 300
			}]
		}`))
	}))
	defer server.Close()

	resp, err := newTestClient(t, server.URL, "").Directions(context.Background(), origin, destination)
	require.NoError(t, err)

	assert.Equal(t, geo.FormatGeoJSON, resp.Format)
	require.Len(t, resp.Routes, 1)
	assert.Equal(t, 1500.0, resp.Routes[0].DistanceMeters)
	assert.Equal(t, 300.0, resp.Routes[0].DurationSeconds)

	coords, err := geo.DecodeLineString(resp.Routes[0].Geometry, resp.Format)
	require.NoError(t, err)
	assert.Equal(t, []entity.Coordinate{origin, destination}, coords)
}

func TestMapboxClient_Directions_PolylineFormat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "polyline6", r.URL.Query().Get("geometries"))
		_, _ = w.Write([]byte(`{"code":"Ok","routes":[{"geometry":"_izlhA~rlgdF_{geC~ywl@","distance":10,"duration":2}]}`))
	}))
	defer server.Close()

	resp, err := newTestClient(t, server.URL, "polyline6").Directions(context.Background(), origin, destination)
	require.NoError(t, err)

	assert.Equal(t, geo.FormatPolyline6, resp.Format)
	require.Len(t, resp.Routes, 1)
	assert.JSONEq(t, `"_izlhA~rlgdF_{geC~ywl@"`, string(resp.Routes[0].Geometry))
}

func TestMapboxClient_Directions_EmptyRoutes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":"Ok","routes":[]}`))
	}))
	defer server.Close()

	resp, err := newTestClient(t, server.URL, "geojson").Directions(context.Background(), origin, destination)
	require.NoError(t, err)
	assert.Empty(t, resp.Routes)
}

func TestMapboxClient_Directions_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"message":"Not Authorized - Invalid Token"}`, wantMsg: "status 401"},
		{name: "server error", status: http.StatusInternalServerError, body: `oops`, wantMsg: "status 500"},
		{name: "no route code", status: http.StatusOK, body: `{"code":"NoRoute","message":"No route found"}`, wantMsg: "NoRoute"},
		{name: "malformed body", status: http.StatusOK, body: `{"routes": [`, wantMsg: "decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(t, server.URL, "geojson").Directions(context.Background(), origin, destination)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestNewClient_Validation(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewClient(ClientParams{Config: &config.Config{}, Logger: logger})
	assert.Error(t, err)

	_, err = NewClient(ClientParams{
		Config: &config.Config{Directions: &config.DirectionsConfig{BaseURL: "https://api.mapbox.com", Geometries: "wkt"}},
		Logger: logger,
	})
	assert.ErrorIs(t, err, geo.ErrUnsupportedFormat)
}
