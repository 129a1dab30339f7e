package components

import (
	"salon-scheduler/internal/infra/cache"
	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/infra/readstore"
	"salon-scheduler/internal/infra/repository"
	"salon-scheduler/internal/infra/uow"
	"salon-scheduler/internal/pkg/config"
	"salon-scheduler/internal/usecase/queries"
	"salon-scheduler/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	readstoreModule,
	repositoryModule,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewScheduleReadStore,
			fx.As(new(queries.ScheduleReadStore)),
		),
		fx.Annotate(
			readstore.NewSaleReadStore,
			fx.As(new(queries.SaleReadStore)),
		),
		fx.Annotate(
			readstore.NewCatalogReadStore,
			fx.As(new(queries.CatalogReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		uow.NewPostgresUoW,
		fx.Annotate(
			repository.NewCatalogRepository,
			fx.As(new(cache.CatalogSource)),
		),
		NewCatalogReads,
	),
)

func NewCatalogReads(rdb redis.UniversalClient, source cache.CatalogSource, dbtx db.DBTX, cfg config.Config) shared.CatalogReads {
	return cache.NewCatalogReads(rdb, source, dbtx, cfg.Redis.CatalogCacheTTL)
}
