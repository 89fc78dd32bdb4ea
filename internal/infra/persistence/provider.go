// Package persistence selects the catalog snapshot store.
package persistence

import (
	"context"
	"log/slog"

	"locator/config"
	"locator/internal/domain/lifecycle"
	"locator/internal/domain/repository"
	"locator/internal/infra/persistence/memory"
	"locator/internal/infra/persistence/postgres"
	redisstore "locator/internal/infra/persistence/redis"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Params holds dependencies for CatalogSnapshotRepository, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewCatalogSnapshotRepository creates the snapshot store named by configuration
func NewCatalogSnapshotRepository(params Params) (repository.CatalogSnapshotRepository, error) {
	cfg := params.Config.Snapshot
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" {
		logger.Info("Snapshot store not configured, using memory store")

		return memory.NewCatalogSnapshotRepository(), nil
	}

	switch cfg.Provider {
	case config.SnapshotProviderMemory:
		logger.Info("Using memory snapshot store")

		return memory.NewCatalogSnapshotRepository(), nil

	case config.SnapshotProviderPostgres:
		db, err := postgres.Open(params.Lc, cfg.Postgres, params.Config.Env.Debug, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("Using postgres snapshot store")

		return postgres.NewCatalogSnapshotRepository(db), nil

	case config.SnapshotProviderRedis:
		if cfg.Redis == nil || cfg.Redis.Addr == "" {
			return nil, errors.New("redis address is required for redis provider")
		}
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		logger.Info("Using redis snapshot store",
			slog.String("addr", cfg.Redis.Addr),
			slog.String("key", cfg.Redis.Key),
		)

		params.Lc.Append(fx.Hook{
			OnStart: func(startCtx context.Context) error {
				ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
				defer cancel()

				return errors.Wrap(client.Ping(ctx).Err(), "failed to ping redis")
			},
			OnStop: func(_ context.Context) error {
				return client.Close()
			},
		})

		return redisstore.NewCatalogSnapshotRepository(client, cfg.Redis.Key, cfg.Redis.TTL), nil

	default:
		return nil, errors.Errorf("unknown snapshot provider: %s", cfg.Provider)
	}
}

// Module provides the persistence FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewCatalogSnapshotRepository),
)
