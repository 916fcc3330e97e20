package deps

import (
	"context"

	auditentities "github.com/deanogram/ALT-Controller-bot/internal/domain/audit/entities"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/channel/entities"
)

// ChannelRepository defines the interface for channel data access
type ChannelRepository interface {
	// GetUserChannels lists channels the user has a role on, ordered by title
	GetUserChannels(ctx context.Context, userID int64) ([]entities.Channel, error)

	// GetByTgChatID retrieves a channel by its Telegram chat identifier
	GetByTgChatID(ctx context.Context, tgChatID int64) (*entities.Channel, error)

	// Upsert creates the channel or updates title/username in place and
	// merges the settings patch. The created flag reports which path ran
	Upsert(ctx context.Context, tgChatID int64, title string, username *string, settingsPatch map[string]any) (channel *entities.Channel, created bool, err error)

	// LinkUser creates the (user, channel) link or overwrites its role
	LinkUser(ctx context.Context, userID int64, channelID uint, role string) (*entities.UserChannelLink, error)

	// GetMemberRole returns the user's role on the channel
	GetMemberRole(ctx context.Context, userID int64, channelID uint) (string, error)
}

// AuditRepository defines the interface for appending audit entries
type AuditRepository interface {
	Append(ctx context.Context, entry *auditentities.AuditEntry) error
}

// TxManager runs a function inside one all-or-nothing transaction
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
