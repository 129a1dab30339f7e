package bootstrap

import (
	"time"

	"salon-scheduler/internal/domain/timegrid"
	"salon-scheduler/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewBusinessLocation,
		NewGrid,
	),
)

func NewBusinessLocation(cfg config.Config) (*time.Location, error) {
	return cfg.Business.Location()
}

func NewGrid(cfg config.Config, loc *time.Location) (timegrid.Grid, error) {
	return timegrid.NewGrid(cfg.Business.OpenHour, cfg.Business.CloseHour, loc)
}
