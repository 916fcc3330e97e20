package audit

import (
	"go.uber.org/fx"

	"github.com/deanogram/ALT-Controller-bot/internal/domain/audit/repository/postgres"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/audit/usecase/buissines"
)

// Module provides audit domain dependencies
var Module = fx.Module(
	"audit",
	fx.Provide(
		postgres.NewAuditRepository,
		buissines.NewUseCase,
	),
)
