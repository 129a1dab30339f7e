package components

import (
	"salon-scheduler/internal/handler"
	"salon-scheduler/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAppointmentHandler,
		api.NewScheduleHandler,
		api.NewSaleHandler,
		api.NewCatalogHandler,
		func(a *api.AppointmentHandler, s *api.ScheduleHandler, sales *api.SaleHandler, cat *api.CatalogHandler) handler.Handlers {
			return handler.Handlers{Appointments: a, Schedule: s, Sales: sales, Catalog: cat}
		},
	),
	fx.Invoke(handler.NewRouter),
)
