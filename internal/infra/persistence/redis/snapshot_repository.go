// Package redis stores the clinic catalog snapshot as one JSON value in Redis.
package redis

import (
	"context"
	"encoding/json"
	"time"

	"locator/internal/domain/entity"
	"locator/internal/domain/repository"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
)

type snapshotDocument struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Clinics   []entity.Clinic `json:"clinics"`
}

// snapshotRepository implements repository.CatalogSnapshotRepository on a single key
type snapshotRepository struct {
	client goredis.UniversalClient
	key    string
	ttl    time.Duration
}

// NewCatalogSnapshotRepository is the constructor for snapshotRepository. A zero ttl keeps the value forever.
func NewCatalogSnapshotRepository(client goredis.UniversalClient, key string, ttl time.Duration) repository.CatalogSnapshotRepository {
	return &snapshotRepository{client: client, key: key, ttl: ttl}
}

func (repo *snapshotRepository) SaveSnapshot(ctx context.Context, snapshot *repository.CatalogSnapshot) error {
	if snapshot == nil {
		return errors.New("snapshot is nil")
	}

	payload, err := json.Marshal(snapshotDocument{FetchedAt: snapshot.FetchedAt, Clinics: snapshot.Clinics})
	if err != nil {
		return errors.Wrap(err, "failed to encode clinic snapshot")
	}

	if err := repo.client.Set(ctx, repo.key, payload, repo.ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to store clinic snapshot")
	}

	return nil
}

func (repo *snapshotRepository) LoadSnapshot(ctx context.Context) (*repository.CatalogSnapshot, error) {
	payload, err := repo.client.Get(ctx, repo.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read clinic snapshot")
	}

	var doc snapshotDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode clinic snapshot")
	}
	if len(doc.Clinics) == 0 {
		return nil, nil
	}

	return &repository.CatalogSnapshot{Clinics: doc.Clinics, FetchedAt: doc.FetchedAt}, nil
}
