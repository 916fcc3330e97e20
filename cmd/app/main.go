package main

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/deanogram/ALT-Controller-bot/config"
	"github.com/deanogram/ALT-Controller-bot/internal/app"
	auditdeps "github.com/deanogram/ALT-Controller-bot/internal/domain/audit/deps"
)

func main() {
	fx.New(
		app.CreateApp(),
		fx.Invoke(run),
	).Run()
}

func run(
	lc fx.Lifecycle,
	cfg *config.Config,
	db *gorm.DB,
	publisher auditdeps.EventPublisher,
	logger zerolog.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info().
				Str("service", cfg.Service.Name).
				Str("port", cfg.Service.Port).
				Msg("Starting control service")

			logger.Info().Msg("Database connected successfully")
			logger.Info().Msg("Control service initialized successfully")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Shutting down control service...")

			if err := publisher.Close(); err != nil {
				logger.Warn().Err(err).Msg("Failed to close audit event publisher")
			}

			sqlDB, _ := db.DB()
			if sqlDB != nil {
				sqlDB.Close()
			}

			logger.Info().Msg("Control service stopped")
			return nil
		},
	})
}
