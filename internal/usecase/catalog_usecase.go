package usecase

import (
	"context"

	"locator/internal/domain/entity"
)

// ClinicCatalog holds the clinic list of a map view.
type ClinicCatalog interface {
	// FetchAll replaces the held set on success. On failure the previous set is kept and
	// returned together with ErrCatalogFetchFailed.
	FetchAll(ctx context.Context) ([]entity.Clinic, error)

	// Refresh behaves like FetchAll; calls made while a fetch is in flight join it.
	Refresh(ctx context.Context) ([]entity.Clinic, error)

	Clinics() []entity.Clinic

	// Mappable returns the clinics that have a location
	Mappable() []entity.Clinic

	Lookup(id string) (entity.Clinic, bool)

	// OnChange registers fn to run after each wholesale replacement of the set.
	// The returned func unregisters it.
	OnChange(fn func()) func()
}
