package domain

import (
	"go.uber.org/fx"

	"github.com/deanogram/ALT-Controller-bot/internal/domain/audit"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/channel"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/post"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/stats"
)

// Module aggregates all domain modules
var Module = fx.Module(
	"domain",
	audit.Module,
	channel.Module,
	post.Module,
	stats.Module,
)
