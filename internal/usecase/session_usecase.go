package usecase

import (
	"context"
	"time"

	"locator/internal/domain/entity"
	"locator/internal/domain/service"

	"github.com/google/uuid"
)

// UserSession is the per-user scope opened at sign-in and torn down on logout
type UserSession struct {
	UserID   uuid.UUID
	Gate     PermissionGate
	Location LocationSource
	Device   service.Device
	OpenedAt time.Time
}

// MapView is the per-screen scope of a mounted map
type MapView struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Catalog     ClinicCatalog
	Coordinator SelectionCoordinator
	MountedAt   time.Time

	// CatalogError is set when the initial fetch failed; the view is usable regardless
	CatalogError *entity.ErrorKind
}

// SessionUsecase manages user sessions and the map views mounted in them.
type SessionUsecase interface {
	// OpenSession is idempotent; an open session is returned as is
	OpenSession(ctx context.Context, userID uuid.UUID) (*UserSession, error)
	CloseSession(ctx context.Context, userID uuid.UUID) error
	Session(userID uuid.UUID) (*UserSession, error)

	MountView(ctx context.Context, userID uuid.UUID) (*MapView, error)
	View(userID, viewID uuid.UUID) (*MapView, error)
	UnmountView(ctx context.Context, userID, viewID uuid.UUID) error

	// Shutdown closes every session
	Shutdown(ctx context.Context)
}
