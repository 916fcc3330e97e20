package postgres

import (
	"context"
	"time"

	"github.com/deanogram/ALT-Controller-bot/internal/domain/stats/deps"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/stats/entities"
	statserrors "github.com/deanogram/ALT-Controller-bot/internal/domain/stats/errors"
	"github.com/deanogram/ALT-Controller-bot/internal/infrastructure/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *gorm.DB) deps.StatsRepository {
	return &statsRepository{
		db: db,
	}
}

// IncrementClick upsert-increments the (post, channel, button) counter in a
// single statement; the database serializes concurrent writers on the key
func (r *statsRepository) IncrementClick(ctx context.Context, postID, channelID uint, buttonKey string, delta int64) error {
	db := database.FromContext(ctx, r.db)

	counter := entities.ClickCounter{
		PostID:    postID,
		ChannelID: channelID,
		ButtonKey: buttonKey,
		Clicks:    delta,
	}

	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "post_id"}, {Name: "channel_id"}, {Name: "button_key"}},
			DoUpdates: clause.Assignments(map[string]any{
				"clicks":     gorm.Expr("stats_clicks.clicks + ?", delta),
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(&counter)
	if result.Error != nil {
		return statserrors.ErrDatabaseOperation
	}

	return nil
}

// IncrementReaction upsert-increments the (post, channel, emoji) counter
func (r *statsRepository) IncrementReaction(ctx context.Context, postID, channelID uint, emoji string, delta int64) error {
	db := database.FromContext(ctx, r.db)

	counter := entities.ReactionCounter{
		PostID:    postID,
		ChannelID: channelID,
		Emoji:     emoji,
		Count:     delta,
	}

	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "post_id"}, {Name: "channel_id"}, {Name: "emoji"}},
			DoUpdates: clause.Assignments(map[string]any{
				"count":      gorm.Expr("stats_reactions.count + ?", delta),
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(&counter)
	if result.Error != nil {
		return statserrors.ErrDatabaseOperation
	}

	return nil
}

// GetClicks lists click counters for one post in one channel
func (r *statsRepository) GetClicks(ctx context.Context, postID, channelID uint) ([]entities.ClickCounter, error) {
	db := database.FromContext(ctx, r.db)

	counters := make([]entities.ClickCounter, 0)
	result := db.WithContext(ctx).
		Where("post_id = ? AND channel_id = ?", postID, channelID).
		Order("button_key ASC").
		Find(&counters)
	if result.Error != nil {
		return nil, statserrors.ErrDatabaseOperation
	}
	return counters, nil
}

// GetReactions lists reaction counters for one post in one channel
func (r *statsRepository) GetReactions(ctx context.Context, postID, channelID uint) ([]entities.ReactionCounter, error) {
	db := database.FromContext(ctx, r.db)

	counters := make([]entities.ReactionCounter, 0)
	result := db.WithContext(ctx).
		Where("post_id = ? AND channel_id = ?", postID, channelID).
		Order("emoji ASC").
		Find(&counters)
	if result.Error != nil {
		return nil, statserrors.ErrDatabaseOperation
	}
	return counters, nil
}
