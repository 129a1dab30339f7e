package components

import (
	"salon-scheduler/internal/domain/timegrid"
	"salon-scheduler/internal/pkg/clock"
	"salon-scheduler/internal/pkg/config"
	"salon-scheduler/internal/usecase/commands"
	"salon-scheduler/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config, grid timegrid.Grid) queries.ScheduleSettings {
		return queries.ScheduleSettings{
			Grid:            grid,
			DropSnapMinutes: cfg.Business.DropSnapMinutes,
			MinFreeSlot:     cfg.Business.MinFreeSlot(),
		}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewSchedulingUseCase,
		commands.NewCheckoutUseCase,
		commands.NewCatalogUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewScheduleQueries,
		queries.NewSaleQueries,
		queries.NewCatalogQueries,
	),
)
