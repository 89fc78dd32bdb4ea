package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"locator/config"
	apimiddleware "locator/internal/delivery/api/middleware"
	"locator/internal/delivery/api/router"
	"locator/internal/delivery/api/router/handler"
	"locator/internal/domain/entity"
	"locator/internal/domain/service"
	"locator/internal/geo"
	"locator/internal/infra/auth"
	"locator/internal/infra/metrics"
	"locator/internal/infra/platform"
	mockService "locator/internal/mocks/service"
	"locator/internal/usecase"
	"locator/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	testOrigin = entity.Coordinate{Latitude: 13.6218, Longitude: 123.1948}
	testClinic = entity.Coordinate{Latitude: 13.6300, Longitude: 123.2050}
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

type testAPI struct {
	echo      *echo.Echo
	token     string
	userID    uuid.UUID
	sessions  usecase.SessionUsecase
	directory *mockService.MockClinicDirectory
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		Directions: &config.DirectionsConfig{Timeout: time.Second},
		Platform: &config.PlatformConfig{
			Provider:        config.PlatformProviderReported,
			PromptTimeout:   time.Second,
			LocationTimeout: time.Second,
			MaxFixAge:       time.Minute,
		},
		Catalog:  &config.CatalogConfig{FetchTimeout: time.Second},
		Viewport: &config.ViewportConfig{Padding: entity.Padding{Top: 40, Right: 40, Bottom: 40, Left: 40}},
	}
	cfg.HTTP.MaxRequestBodySize = "100KB"
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.AccessTTL = time.Hour

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	devices, err := platform.NewDeviceFactory(platform.FactoryParams{Config: cfg, Logger: logger})
	require.NoError(t, err)

	directory := mockService.NewMockClinicDirectory(t)
	directions := mockService.NewMockDirectionsService(t)
	directions.EXPECT().Directions(mock.Anything, mock.Anything, mock.Anything).
		Return(&service.DirectionsResponse{
			Format: geo.FormatGeoJSON,
			Routes: []service.DirectionsRoute{{
				Geometry:        json.RawMessage(`{"type":"LineString","coordinates":[[123.1948,13.6218],[123.2050,13.6300]]}`),
				DistanceMeters:  1830,
				DurationSeconds: 300,
			}},
		}, nil).Maybe()

	registry := metrics.NewRegistry()
	routingMetrics := metrics.NewRoutingMetrics(registry)

	sessions := impl.NewSessionService(impl.SessionServiceParams{
		Devices:   devices,
		Directory: directory,
		Resolver:  impl.NewRouteResolver(impl.RouteResolverParams{Directions: directions, Config: cfg, Logger: logger}),
		Fitter:    impl.NewViewportFitter(),
		Metrics:   routingMetrics,
		Config:    cfg,
		Logger:    logger,
	})
	t.Cleanup(func() { sessions.Shutdown(context.Background()) })

	e := NewEcho(cfg, logger, router.RouterParams{
		SessionHandler: handler.NewSessionHandler(handler.SessionHandlerParams{SessionUC: sessions, Logger: logger}),
		ViewHandler:    handler.NewViewHandler(handler.ViewHandlerParams{SessionUC: sessions, Logger: logger}),
		EventHandler:   handler.NewEventHandler(handler.EventHandlerParams{SessionUC: sessions, Logger: logger}),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(tokens),
		Gatherer:       registry,
	})

	userID := uuid.New()
	token, err := tokens.GenerateAccessToken(userID)
	require.NoError(t, err)

	return &testAPI{echo: e, token: token, userID: userID, sessions: sessions, directory: directory}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+a.token)
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}

	return rec, env
}

func (a *testAPI) mountView(t *testing.T) handler.ViewResponse {
	t.Helper()

	rec, _ := a.do(t, http.MethodPost, "/api/v1/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := a.do(t, http.MethodPost, "/api/v1/views", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var view handler.ViewResponse
	require.NoError(t, json.Unmarshal(env.Data, &view))

	return view
}

func (a *testAPI) state(t *testing.T, viewID uuid.UUID) entity.SelectionState {
	t.Helper()

	rec, env := a.do(t, http.MethodGet, "/api/v1/views/"+viewID.String()+"/state", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var state entity.SelectionState
	require.NoError(t, json.Unmarshal(env.Data, &state))

	return state
}

func clinics() []entity.Clinic {
	clinic := testClinic

	return []entity.Clinic{
		{ID: "c1", Name: "Naga Family Clinic", Address: "Magsaysay Ave", Location: &clinic},
		{ID: "c2", Name: "Unmapped Clinic", Address: "Pili"},
	}
}

func TestAPI_HealthAndMetrics(t *testing.T) {
	api := newTestAPI(t)

	rec := httptest.NewRecorder()
	api.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = httptest.NewRecorder()
	api.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestAPI_RequiresToken(t *testing.T) {
	api := newTestAPI(t)

	for _, header := range []string{"", "Basic abc", "Bearer not-a-jwt"} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/session", nil)
		if header != "" {
			req.Header.Set(echo.HeaderAuthorization, header)
		}
		rec := httptest.NewRecorder()
		api.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
	}
}

func TestAPI_ViewRequiresSession(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.do(t, http.MethodPost, "/api/v1/views", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "SESSION_NOT_FOUND", env.Error.Code)
	assert.NotEmpty(t, env.Meta.RequestID)
}

func TestAPI_SelectionFlow(t *testing.T) {
	api := newTestAPI(t)
	api.directory.EXPECT().ListClinics(mock.Anything).Return(clinics(), nil)

	view := api.mountView(t)
	assert.Nil(t, view.CatalogError)
	assert.Equal(t, 2, view.ClinicCount)
	base := "/api/v1/views/" + view.ID.String()

	rec, env := api.do(t, http.MethodGet, base+"/clinics?mappable=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list handler.ClinicsResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Clinics, 1)
	assert.Equal(t, "c1", list.Clinics[0].ID)

	rec, _ = api.do(t, http.MethodGet, base+"/camera", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = api.do(t, http.MethodPut, base+"/origin", map[string]float64{"latitude": testOrigin.Latitude, "longitude": testOrigin.Longitude})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = api.do(t, http.MethodPut, base+"/selection", map[string]string{"clinic_id": "c1"})
	require.Equal(t, http.StatusOK, rec.Code)

	require.Eventually(t, func() bool {
		return api.state(t, view.ID).Route != nil
	}, 2*time.Second, 10*time.Millisecond)

	state := api.state(t, view.ID)
	assert.InDelta(t, 1.83, state.Route.DistanceKm, 1e-9)
	assert.InDelta(t, 5.0, state.Route.DurationMin, 1e-9)
	assert.False(t, state.LoadingRoute)
	assert.Nil(t, state.RouteError)

	rec, env = api.do(t, http.MethodGet, base+"/camera", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var camera entity.CameraCommand
	require.NoError(t, json.Unmarshal(env.Data, &camera))
	assert.Equal(t, entity.Padding{Top: 40, Right: 40, Bottom: 40, Left: 40}, camera.Region.Padding)

	// consumed once
	rec, _ = api.do(t, http.MethodGet, base+"/camera", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, env = api.do(t, http.MethodDelete, base+"/selection", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cleared entity.SelectionState
	require.NoError(t, json.Unmarshal(env.Data, &cleared))
	assert.Nil(t, cleared.Route)
	assert.Nil(t, cleared.SelectedClinicID)

	rec, _ = api.do(t, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, env = api.do(t, http.MethodGet, base+"/state", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VIEW_NOT_FOUND", env.Error.Code)
}

func TestAPI_RequestErrors(t *testing.T) {
	api := newTestAPI(t)
	api.directory.EXPECT().ListClinics(mock.Anything).Return(clinics(), nil)

	view := api.mountView(t)
	base := "/api/v1/views/" + view.ID.String()

	rec, env := api.do(t, http.MethodPut, base+"/origin", map[string]float64{"latitude": 95, "longitude": 10})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.Equal(t, map[string]string{"latitude": "latitude"}, env.Error.Details)

	rec, env = api.do(t, http.MethodPut, base+"/selection", map[string]string{"clinic_id": "missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CLINIC_NOT_FOUND", env.Error.Code)

	rec, _ = api.do(t, http.MethodGet, "/api/v1/views/not-a-uuid/state", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = api.do(t, http.MethodGet, base+"/clinics?mappable=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = api.do(t, http.MethodPost, "/api/v1/session/permission/answer", map[string]bool{"granted": true})
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NO_PENDING_PROMPT", env.Error.Code)
}

func TestAPI_CatalogFailureDoesNotBlockMount(t *testing.T) {
	api := newTestAPI(t)
	api.directory.EXPECT().ListClinics(mock.Anything).Return(nil, assert.AnError)

	view := api.mountView(t)
	require.NotNil(t, view.CatalogError)
	assert.Equal(t, entity.ErrorKindCatalogFetchFailed, *view.CatalogError)
	assert.Zero(t, view.ClinicCount)

	rec, env := api.do(t, http.MethodPost, "/api/v1/views/"+view.ID.String()+"/clinics/refresh", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CATALOG_FETCH_FAILED", env.Error.Code)
}

func TestAPI_ReportedDeviceLocateOrigin(t *testing.T) {
	api := newTestAPI(t)
	api.directory.EXPECT().ListClinics(mock.Anything).Return(clinics(), nil)

	view := api.mountView(t)

	rec, env := api.do(t, http.MethodPost, "/api/v1/session/permission/request", nil)
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"permission":"requesting"}`, string(env.Data))

	require.Eventually(t, func() bool {
		rec, _ := api.do(t, http.MethodPost, "/api/v1/session/permission/answer", map[string]bool{"granted": true})

		return rec.Code == http.StatusOK
	}, time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		_, env := api.do(t, http.MethodGet, "/api/v1/session/permission", nil)

		return string(env.Data) == `{"permission":"granted"}`
	}, time.Second, 10*time.Millisecond)

	rec, _ = api.do(t, http.MethodPut, "/api/v1/session/position", map[string]float64{"latitude": testOrigin.Latitude, "longitude": testOrigin.Longitude})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec, env = api.do(t, http.MethodPost, "/api/v1/views/"+view.ID.String()+"/origin/locate", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var state entity.SelectionState
	require.NoError(t, json.Unmarshal(env.Data, &state))
	require.NotNil(t, state.Origin)
	assert.Equal(t, testOrigin, *state.Origin)
}

func TestAPI_LocateOriginWithoutPermission(t *testing.T) {
	api := newTestAPI(t)
	api.directory.EXPECT().ListClinics(mock.Anything).Return(clinics(), nil)

	view := api.mountView(t)

	rec, env := api.do(t, http.MethodPost, "/api/v1/views/"+view.ID.String()+"/origin/locate", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "LOCATION_UNAVAILABLE", env.Error.Code)

	state := api.state(t, view.ID)
	require.NotNil(t, state.RouteError)
	assert.Equal(t, entity.ErrorKindLocationUnavailable, *state.RouteError)

	rec, env = api.do(t, http.MethodDelete, "/api/v1/views/"+view.ID.String()+"/error", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &state))
	assert.Nil(t, state.RouteError)
}

func TestAPI_EventStream(t *testing.T) {
	api := newTestAPI(t)
	api.directory.EXPECT().ListClinics(mock.Anything).Return(clinics(), nil)

	view := api.mountView(t)

	server := httptest.NewServer(api.echo)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/views/" + view.ID.String() + "/events"
	header := http.Header{}
	header.Set(echo.HeaderAuthorization, "Bearer "+api.token)

	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	readEvent := func() usecase.SelectionEvent {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var event usecase.SelectionEvent
		require.NoError(t, conn.ReadJSON(&event))

		return event
	}

	first := readEvent()
	assert.Equal(t, usecase.EventTypeState, first.Type)
	require.NotNil(t, first.State)
	assert.Nil(t, first.State.Origin)

	second := readEvent()
	assert.Equal(t, usecase.EventTypePermission, second.Type)

	rec, _ := api.do(t, http.MethodPut, "/api/v1/views/"+view.ID.String()+"/origin", map[string]float64{"latitude": testOrigin.Latitude, "longitude": testOrigin.Longitude})
	require.Equal(t, http.StatusOK, rec.Code)

	next := readEvent()
	assert.Equal(t, usecase.EventTypeState, next.Type)
	require.NotNil(t, next.State)
	require.NotNil(t, next.State.Origin)
	assert.Equal(t, testOrigin, *next.State.Origin)

	// unmounting the view ends the stream
	rec, _ = api.do(t, http.MethodDelete, "/api/v1/views/"+view.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "unexpected error: %v", err)
}
