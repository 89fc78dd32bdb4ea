package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"locator/config"
	deliverycontext "locator/internal/delivery/context"
	"locator/internal/domain/entity"
	domainerrors "locator/internal/domain/errors"
	"locator/internal/domain/repository"
	"locator/internal/domain/service"
	"locator/internal/errors"
	"locator/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
// Sessions live in memory; each holds its own permission gate, device and mounted views.
type sessionService struct {
	devices   service.DeviceFactory
	directory service.ClinicDirectory
	snapshots repository.CatalogSnapshotRepository
	resolver  usecase.RouteResolver
	fitter    usecase.ViewportFitter
	metrics   service.RoutingMetrics
	config    *config.Config
	logger    *slog.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*sessionEntry
}

type sessionEntry struct {
	session *usecase.UserSession
	views   map[uuid.UUID]*usecase.MapView
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	Devices   service.DeviceFactory
	Directory service.ClinicDirectory
	Snapshots repository.CatalogSnapshotRepository `optional:"true"`
	Resolver  usecase.RouteResolver
	Fitter    usecase.ViewportFitter
	Metrics   service.RoutingMetrics `optional:"true"`
	Config    *config.Config
	Logger    *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	metrics := params.Metrics
	if metrics == nil {
		metrics = service.NopMetrics{}
	}

	return &sessionService{
		devices:   params.Devices,
		directory: params.Directory,
		snapshots: params.Snapshots,
		resolver:  params.Resolver,
		fitter:    params.Fitter,
		metrics:   metrics,
		config:    params.Config,
		logger:    loggerOrDiscard(params.Logger),
		sessions:  make(map[uuid.UUID]*sessionEntry),
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *sessionService) OpenSession(ctx context.Context, userID uuid.UUID) (*usecase.UserSession, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if entry, ok := srv.sessions[userID]; ok {
		return entry.session, nil
	}

	device := srv.devices.NewDevice(userID)
	platform := srv.config.Platform

	gate := NewPermissionGate(PermissionGateParams{
		Prompter: device,
		Timeout:  platform.PromptTimeout,
		Metrics:  srv.metrics,
		Logger:   srv.logger.With(slog.String("user_id", userID.String())),
	})

	session := &usecase.UserSession{
		UserID:   userID,
		Gate:     gate,
		Location: NewLocationSource(gate, device, platform.LocationTimeout, srv.logger),
		Device:   device,
		OpenedAt: time.Now().UTC(),
	}

	srv.sessions[userID] = &sessionEntry{
		session: session,
		views:   make(map[uuid.UUID]*usecase.MapView),
	}

	srv.log(ctx).Info("User session opened", slog.String("user_id", userID.String()))

	return session, nil
}

// CloseSession unmounts every view of the session before tearing it down.
func (srv *sessionService) CloseSession(ctx context.Context, userID uuid.UUID) error {
	srv.mu.Lock()
	entry, ok := srv.sessions[userID]
	delete(srv.sessions, userID)
	srv.mu.Unlock()

	if !ok {
		return errors.WithStack(domainerrors.ErrSessionNotFound)
	}

	srv.teardown(entry)
	srv.log(ctx).Info("User session closed", slog.String("user_id", userID.String()))

	return nil
}

func (srv *sessionService) Session(userID uuid.UUID) (*usecase.UserSession, error) {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	entry, ok := srv.sessions[userID]
	if !ok {
		return nil, errors.WithStack(domainerrors.ErrSessionNotFound)
	}

	return entry.session, nil
}

// MountView creates a map view and runs its initial fetch. A failed fetch does not fail the mount.
func (srv *sessionService) MountView(ctx context.Context, userID uuid.UUID) (*usecase.MapView, error) {
	session, err := srv.Session(userID)
	if err != nil {
		return nil, err
	}

	viewID := uuid.New()
	logger := srv.logger.With(
		slog.String("user_id", userID.String()),
		slog.String("view_id", viewID.String()),
	)

	catalog := NewClinicCatalog(ClinicCatalogParams{
		Directory: srv.directory,
		Snapshots: srv.snapshots,
		Timeout:   srv.config.Catalog.FetchTimeout,
		Metrics:   srv.metrics,
		Logger:    logger,
	})

	view := &usecase.MapView{
		ID:      viewID,
		UserID:  userID,
		Catalog: catalog,
		Coordinator: NewSelectionCoordinator(SelectionCoordinatorParams{
			Catalog:  catalog,
			Resolver: srv.resolver,
			Fitter:   srv.fitter,
			Location: session.Location,
			Padding:  srv.config.Viewport.Padding,
			Metrics:  srv.metrics,
			Logger:   logger,
		}),
		MountedAt: time.Now().UTC(),
	}

	if _, err := catalog.FetchAll(ctx); err != nil {
		kind := domainerrors.Kind(err)
		if kind == "" {
			kind = entity.ErrorKindCatalogFetchFailed
		}
		view.CatalogError = &kind
		srv.log(ctx).Warn("Initial clinic fetch failed", slog.Any("error", err))
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	entry, ok := srv.sessions[userID]
	if !ok || entry.session != session {
		view.Coordinator.Close()

		return nil, errors.WithStack(domainerrors.ErrSessionNotFound)
	}
	entry.views[viewID] = view

	srv.log(ctx).Info("Map view mounted", slog.String("view_id", viewID.String()))

	return view, nil
}

func (srv *sessionService) View(userID, viewID uuid.UUID) (*usecase.MapView, error) {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	entry, ok := srv.sessions[userID]
	if !ok {
		return nil, errors.WithStack(domainerrors.ErrSessionNotFound)
	}

	view, ok := entry.views[viewID]
	if !ok {
		return nil, errors.WithStack(domainerrors.ErrViewNotFound)
	}

	return view, nil
}

func (srv *sessionService) UnmountView(ctx context.Context, userID, viewID uuid.UUID) error {
	srv.mu.Lock()
	entry, ok := srv.sessions[userID]
	if !ok {
		srv.mu.Unlock()

		return errors.WithStack(domainerrors.ErrSessionNotFound)
	}

	view, ok := entry.views[viewID]
	delete(entry.views, viewID)
	srv.mu.Unlock()

	if !ok {
		return errors.WithStack(domainerrors.ErrViewNotFound)
	}

	view.Coordinator.Close()
	srv.log(ctx).Info("Map view unmounted", slog.String("view_id", viewID.String()))

	return nil
}

func (srv *sessionService) Shutdown(ctx context.Context) {
	srv.mu.Lock()
	entries := srv.sessions
	srv.sessions = make(map[uuid.UUID]*sessionEntry)
	srv.mu.Unlock()

	for _, entry := range entries {
		srv.teardown(entry)
	}

	srv.log(ctx).Info("All user sessions closed", slog.Int("sessions", len(entries)))
}

func (srv *sessionService) teardown(entry *sessionEntry) {
	for _, view := range entry.views {
		view.Coordinator.Close()
	}

	entry.session.Gate.Close()

	if closer, ok := entry.session.Device.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			srv.logger.Warn("Failed to close device", slog.Any("error", err))
		}
	}
}
