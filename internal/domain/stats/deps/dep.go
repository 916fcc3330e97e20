package deps

import (
	"context"

	"github.com/deanogram/ALT-Controller-bot/internal/domain/stats/entities"
)

// StatsRepository defines the interface for counter data access. Both
// increment operations are single atomic upsert statements, so concurrent
// increments on the same key never lose updates
type StatsRepository interface {
	// IncrementClick upsert-increments the (post, channel, button) counter
	IncrementClick(ctx context.Context, postID, channelID uint, buttonKey string, delta int64) error

	// IncrementReaction upsert-increments the (post, channel, emoji) counter
	IncrementReaction(ctx context.Context, postID, channelID uint, emoji string, delta int64) error

	// GetClicks lists click counters for one post in one channel
	GetClicks(ctx context.Context, postID, channelID uint) ([]entities.ClickCounter, error)

	// GetReactions lists reaction counters for one post in one channel
	GetReactions(ctx context.Context, postID, channelID uint) ([]entities.ReactionCounter, error)
}
