package app

import (
	"go.uber.org/fx"

	"github.com/deanogram/ALT-Controller-bot/config"
	"github.com/deanogram/ALT-Controller-bot/internal/domain"
	"github.com/deanogram/ALT-Controller-bot/internal/infrastructure/database"
	"github.com/deanogram/ALT-Controller-bot/internal/infrastructure/kafka"
	"github.com/deanogram/ALT-Controller-bot/internal/infrastructure/logger"
	"github.com/deanogram/ALT-Controller-bot/internal/infrastructure/metrics"
)

// CreateApp creates the fx application with all dependencies
func CreateApp() fx.Option {
	return fx.Options(
		fx.Provide(config.Out),
		fx.Provide(logger.NewLogger),
		fx.Provide(database.NewPostgresDB),
		fx.Provide(database.NewTxManager),
		kafka.Module,
		metrics.Module,
		domain.Module,
	)
}
