// Package memory keeps the clinic catalog snapshot in process memory.
package memory

import (
	"context"
	"slices"
	"sync"

	"locator/internal/domain/repository"
)

type snapshotRepository struct {
	mu       sync.RWMutex
	snapshot *repository.CatalogSnapshot
}

// NewCatalogSnapshotRepository creates an in-memory snapshot store
func NewCatalogSnapshotRepository() repository.CatalogSnapshotRepository {
	return &snapshotRepository{}
}

func (repo *snapshotRepository) SaveSnapshot(_ context.Context, snapshot *repository.CatalogSnapshot) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if snapshot == nil || len(snapshot.Clinics) == 0 {
		repo.snapshot = nil

		return nil
	}

	repo.snapshot = &repository.CatalogSnapshot{
		Clinics:   slices.Clone(snapshot.Clinics),
		FetchedAt: snapshot.FetchedAt,
	}

	return nil
}

func (repo *snapshotRepository) LoadSnapshot(_ context.Context) (*repository.CatalogSnapshot, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	if repo.snapshot == nil {
		return nil, nil
	}

	return &repository.CatalogSnapshot{
		Clinics:   slices.Clone(repo.snapshot.Clinics),
		FetchedAt: repo.snapshot.FetchedAt,
	}, nil
}
