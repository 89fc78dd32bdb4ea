// Package postgres stores the clinic catalog snapshot in PostgreSQL through GORM.
package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"locator/config"
	"locator/internal/domain/lifecycle"
	"locator/internal/errors"

	"go.uber.org/fx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond
)

// Open connects to PostgreSQL and ties the pool to the fx lifecycle
func Open(lc fx.Lifecycle, cfg *config.PostgresConfig, debug bool, logger *slog.Logger) (*gorm.DB, error) {
	if cfg == nil || cfg.DSN == "" {
		return nil, errors.New("postgres DSN is required")
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		// Snapshot writes use explicit transactions
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(logger, debug),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			go monitorDBPool(monitorCtx, logger, sqlDB, dbPoolMonitorInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return sqlDB.Close()
		},
	})

	return db, nil
}

func monitorDBPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			waitDelta := cur.WaitCount - prev.WaitCount
			waitDurationDelta := cur.WaitDuration - prev.WaitDuration
			prev = cur

			if waitDelta <= 0 {
				continue
			}

			level := slog.LevelDebug
			if waitDurationDelta >= dbPoolWarnDurationThreshold {
				level = slog.LevelWarn
			}
			logger.LogAttrs(ctx, level, "Snapshot store pool wait",
				slog.Int64("waitCountDelta", waitDelta),
				slog.Duration("avgWait", waitDurationDelta/time.Duration(waitDelta)),
				slog.Int("openConns", cur.OpenConnections),
				slog.Int("inUseConns", cur.InUse),
			)
		}
	}
}
