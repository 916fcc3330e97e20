package post

import (
	"go.uber.org/fx"

	auditdeps "github.com/deanogram/ALT-Controller-bot/internal/domain/audit/deps"
	channeldeps "github.com/deanogram/ALT-Controller-bot/internal/domain/channel/deps"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/post/deps"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/post/repository/postgres"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/post/usecase/buissines"
	"github.com/deanogram/ALT-Controller-bot/internal/infrastructure/database"
)

// Module provides post domain dependencies
var Module = fx.Module(
	"post",
	fx.Provide(
		postgres.NewPostRepository,
		func(r channeldeps.ChannelRepository) deps.MemberRoleGetter { return r },
		func(r auditdeps.AuditRepository) deps.AuditRepository { return r },
		func(m *database.TxManager) deps.TxManager { return m },
		buissines.NewUseCase,
	),
)
