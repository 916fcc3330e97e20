package channel

import (
	"go.uber.org/fx"

	auditdeps "github.com/deanogram/ALT-Controller-bot/internal/domain/audit/deps"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/channel/deps"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/channel/repository/postgres"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/channel/usecase/buissines"
	"github.com/deanogram/ALT-Controller-bot/internal/infrastructure/database"
)

// Module provides channel domain dependencies
var Module = fx.Module(
	"channel",
	fx.Provide(
		postgres.NewChannelRepository,
		func(m *database.TxManager) deps.TxManager { return m },
		func(r auditdeps.AuditRepository) deps.AuditRepository { return r },
		buissines.NewUseCase,
	),
)
