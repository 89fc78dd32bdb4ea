package service

import (
	"context"

	"locator/internal/domain/entity"

	"github.com/google/uuid"
)

// PermissionPrompter asks the device owner for foreground location permission
type PermissionPrompter interface {
	// RequestForegroundPermission blocks until the prompt is answered or ctx is done
	RequestForegroundPermission(ctx context.Context) (granted bool, err error)
}

// PositionProvider reads the device's current position
type PositionProvider interface {
	CurrentPosition(ctx context.Context) (entity.Coordinate, error)
}

// Device is the location platform of one user session
type Device interface {
	PermissionPrompter
	PositionProvider
}

// ReportingDevice is a Device fed by the mobile client through the API
type ReportingDevice interface {
	Device

	// AnswerPrompt resolves the pending permission prompt
	AnswerPrompt(granted bool) error

	// ReportPosition records a fresh position fix
	ReportPosition(coordinate entity.Coordinate) error
}

// DeviceFactory builds the Device for a user session
type DeviceFactory interface {
	NewDevice(userID uuid.UUID) Device
}
