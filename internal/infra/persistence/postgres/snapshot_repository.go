package postgres

import (
	"context"

	"locator/internal/domain/repository"
	"locator/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const snapshotBatchSize = 100

// snapshotRepository implements repository.CatalogSnapshotRepository on one table
type snapshotRepository struct {
	db *gorm.DB
}

// NewCatalogSnapshotRepository is the constructor for snapshotRepository
func NewCatalogSnapshotRepository(db *gorm.DB) repository.CatalogSnapshotRepository {
	return &snapshotRepository{db: db}
}

// SaveSnapshot replaces the stored snapshot atomically
func (repo *snapshotRepository) SaveSnapshot(ctx context.Context, snapshot *repository.CatalogSnapshot) error {
	if snapshot == nil {
		return errors.New("snapshot is nil")
	}

	rows := make([]*model.ClinicSnapshotModel, 0, len(snapshot.Clinics))
	for i, clinic := range snapshot.Clinics {
		rows = append(rows, model.FromClinic(i+1, clinic, snapshot.FetchedAt))
	}

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&model.ClinicSnapshotModel{}).Error; err != nil {
			return errors.Wrap(err, "failed to clear clinic snapshot")
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, snapshotBatchSize).Error; err != nil {
			return errors.Wrap(err, "failed to insert clinic snapshot")
		}

		return nil
	})

	return errors.WithStack(err)
}

// LoadSnapshot returns the stored snapshot in directory order
func (repo *snapshotRepository) LoadSnapshot(ctx context.Context) (*repository.CatalogSnapshot, error) {
	var rows []*model.ClinicSnapshotModel

	if err := repo.db.WithContext(ctx).
		Order("position").
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load clinic snapshot")
	}

	if len(rows) == 0 {
		return nil, nil
	}

	snapshot := &repository.CatalogSnapshot{FetchedAt: rows[0].FetchedAt}
	for _, row := range rows {
		snapshot.Clinics = append(snapshot.Clinics, row.ToClinic())
	}

	return snapshot, nil
}
