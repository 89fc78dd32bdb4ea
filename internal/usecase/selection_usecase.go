package usecase

import (
	"context"

	"locator/internal/domain/entity"
)

// EventType names the kind of a SelectionEvent
type EventType string

const (
	EventTypeState      EventType = "state"
	EventTypeCamera     EventType = "camera"
	EventTypePermission EventType = "permission"
)

// SelectionEvent is one item of a map view's event stream
type SelectionEvent struct {
	Type       EventType               `json:"type"`
	State      *entity.SelectionState  `json:"state,omitempty"`
	Camera     *entity.CameraCommand   `json:"camera,omitempty"`
	Permission *entity.PermissionState `json:"permission,omitempty"`
}

// SelectionCoordinator re-resolves the route whenever the origin or the selected clinic changes.
// It is the only writer of SelectionState; the last trigger always wins.
type SelectionCoordinator interface {
	// SetSelectedClinic returns ErrClinicNotFound, leaving state untouched, for an id the catalog does not hold
	SetSelectedClinic(clinicID string) error

	ClearSelection()

	// SetOrigin returns ErrValidationFailed for an out-of-range coordinate
	SetOrigin(origin entity.Coordinate) error

	// LocateOrigin acquires the device coordinate and applies it as the origin.
	// On failure the route is cleared and routeError becomes LOCATION_UNAVAILABLE.
	LocateOrigin(ctx context.Context) error

	DismissError()

	Snapshot() entity.SelectionState

	// TakeCameraCommand consumes the pending camera command, if any
	TakeCameraCommand() (*entity.CameraCommand, bool)

	Subscribe() (<-chan SelectionEvent, func())

	// Close discards every in-flight and future result and closes subscribers
	Close()
}
