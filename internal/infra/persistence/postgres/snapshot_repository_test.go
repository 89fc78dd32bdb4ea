package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"locator/internal/domain/entity"
	"locator/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	return db, mock
}

func TestSnapshotRepository_SaveSnapshot(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogSnapshotRepository(db)

	fetchedAt := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	snapshot := &repository.CatalogSnapshot{
		FetchedAt: fetchedAt,
		Clinics: []entity.Clinic{
			{ID: "c1", Name: "Naga Clinic", Location: &entity.Coordinate{Latitude: 13.62, Longitude: 123.19}},
			{ID: "c2", Name: "No Location"},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "clinic_snapshots"`)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "clinic_snapshots"`)).
		WithArgs(
			1, "c1", "Naga Clinic", "", "", 13.62, 123.19, fetchedAt,
			2, "c2", "No Location", "", "", nil, nil, fetchedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, repo.SaveSnapshot(context.Background(), snapshot))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_SaveSnapshot_RollsBackOnInsertFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogSnapshotRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "clinic_snapshots"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "clinic_snapshots"`)).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.SaveSnapshot(context.Background(), &repository.CatalogSnapshot{
		Clinics:   []entity.Clinic{{ID: "c1", Name: "Naga Clinic"}},
		FetchedAt: time.Now(),
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_LoadSnapshot(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogSnapshotRepository(db)

	fetchedAt := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"position", "clinic_id", "name", "address", "contact_info", "latitude", "longitude", "fetched_at"}).
		AddRow(1, "c1", "Naga Clinic", "Magsaysay Ave", "0917", 13.62, 123.19, fetchedAt).
		AddRow(2, "c2", "No Location", "", "", nil, nil, fetchedAt)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "clinic_snapshots" ORDER BY position`)).
		WillReturnRows(rows)

	snapshot, err := repo.LoadSnapshot(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snapshot)

	assert.Equal(t, fetchedAt, snapshot.FetchedAt)
	assert.Equal(t, []entity.Clinic{
		{ID: "c1", Name: "Naga Clinic", Address: "Magsaysay Ave", ContactInfo: "0917", Location: &entity.Coordinate{Latitude: 13.62, Longitude: 123.19}},
		{ID: "c2", Name: "No Location"},
	}, snapshot.Clinics)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_LoadSnapshot_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogSnapshotRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "clinic_snapshots"`)).
		WillReturnRows(sqlmock.NewRows([]string{"position"}))

	snapshot, err := repo.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}
