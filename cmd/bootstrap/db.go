package bootstrap

import (
	"context"
	"log/slog"

	"slot-swapper/cmd/bootstrap/components"
	"slot-swapper/internal/infra/db"
	"slot-swapper/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewPoolOpener,
	),
)

// NewPoolOpener defers connecting until persistence asks for a pool, so the
// memory driver never touches PostgreSQL.
func NewPoolOpener(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) components.PoolOpener {
	return func() (*pgxpool.Pool, error) {
		return NewDB(lc, cfg, logger)
	}
}

// NewDB opens the pool and applies pending migrations when enabled.
func NewDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}

	if cfg.DB.MigrateOnStart {
		logger.Info("applying database migrations")
		if err = db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			pool.Close()
			return nil
		},
	})

	return pool, nil
}
