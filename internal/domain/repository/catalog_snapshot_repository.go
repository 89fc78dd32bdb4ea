package repository

import (
	"context"
	"time"

	"locator/internal/domain/entity"
)

// CatalogSnapshot is the last clinic set a directory fetch returned
type CatalogSnapshot struct {
	Clinics   []entity.Clinic
	FetchedAt time.Time
}

// CatalogSnapshotRepository persists the last good clinic catalog.
// LoadSnapshot returns (nil, nil) when no snapshot has been saved.
type CatalogSnapshotRepository interface {
	SaveSnapshot(ctx context.Context, snapshot *CatalogSnapshot) error
	LoadSnapshot(ctx context.Context) (*CatalogSnapshot, error)
}
