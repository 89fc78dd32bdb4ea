// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"locator/internal/domain/entity"
)

// PermissionGate owns the device-location authorization state machine of a user session.
type PermissionGate interface {
	// RequestPermission moves to Requesting, prompts the platform and waits for the answer.
	// Concurrent calls join the prompt already in flight. It never fails: a failed or timed-out
	// prompt resolves to Denied, and a caller whose ctx ends early gets the current state.
	RequestPermission(ctx context.Context) entity.PermissionState

	// BeginRequest starts the same prompt without waiting for it and returns the state after the start.
	BeginRequest() entity.PermissionState

	CurrentState() entity.PermissionState

	// Subscribe streams every state change until the returned func is called or the gate closes.
	Subscribe() (<-chan entity.PermissionState, func())

	Close()
}

// LocationSource acquires the current device coordinate. Every call is a fresh acquisition.
type LocationSource interface {
	CurrentCoordinate(ctx context.Context) (entity.Coordinate, error)
}
