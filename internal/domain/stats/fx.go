package stats

import (
	"go.uber.org/fx"

	"github.com/deanogram/ALT-Controller-bot/internal/domain/stats/repository/postgres"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/stats/usecase/buissines"
)

// Module provides stats domain dependencies
var Module = fx.Module(
	"stats",
	fx.Provide(
		postgres.NewStatsRepository,
		buissines.NewUseCase,
	),
)
