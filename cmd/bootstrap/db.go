package bootstrap

import (
	"context"

	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
	PoolInterfaces,
)

// PoolInterfaces exposes a *pgxpool.Pool as the narrow interfaces the
// persistence layer depends on.
var PoolInterfaces = fx.Provide(
	fx.Annotate(
		func(pool *pgxpool.Pool) *pgxpool.Pool { return pool },
		fx.As(new(db.Pool)),
		fx.As(new(db.DBTX)),
	),
)

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	if cfg.DB.AutoMigrate {
		if err := db.MigrateUp(cfg.DB.BuildDSN()); err != nil {
			return nil, err
		}
	}

	pool, cleanup, err := db.Connect(context.Background(), cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}
