package postgres

import (
	"context"
	"errors"

	"github.com/deanogram/ALT-Controller-bot/internal/domain/channel/deps"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/channel/entities"
	channelerrors "github.com/deanogram/ALT-Controller-bot/internal/domain/channel/errors"
	"github.com/deanogram/ALT-Controller-bot/internal/infrastructure/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type channelRepository struct {
	db *gorm.DB
}

// NewChannelRepository creates a new channel repository
func NewChannelRepository(db *gorm.DB) deps.ChannelRepository {
	return &channelRepository{
		db: db,
	}
}

// GetUserChannels lists channels the user has a role on, ordered by title
func (r *channelRepository) GetUserChannels(ctx context.Context, userID int64) ([]entities.Channel, error) {
	db := database.FromContext(ctx, r.db)

	channels := make([]entities.Channel, 0)
	result := db.WithContext(ctx).
		Joins("JOIN user_channels ON user_channels.channel_id = channels.id").
		Where("user_channels.user_id = ?", userID).
		Order("channels.title ASC").
		Find(&channels)

	if result.Error != nil {
		return nil, channelerrors.ErrDatabaseOperation
	}

	return channels, nil
}

// GetByTgChatID retrieves a channel by its Telegram chat identifier
func (r *channelRepository) GetByTgChatID(ctx context.Context, tgChatID int64) (*entities.Channel, error) {
	db := database.FromContext(ctx, r.db)

	var channel entities.Channel
	result := db.WithContext(ctx).
		Where("tg_chat_id = ?", tgChatID).
		First(&channel)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, channelerrors.ChannelNotFound(tgChatID)
		}
		return nil, channelerrors.ErrDatabaseOperation
	}

	return &channel, nil
}

// Upsert creates the channel or updates title/username in place and merges
// the settings patch. The existing row is read under FOR UPDATE so concurrent
// settings patches serialize in commit order. A concurrent creator can still
// win the race on the unique tg_chat_id index; that surfaces as
// ErrChannelExists and the caller retries
func (r *channelRepository) Upsert(ctx context.Context, tgChatID int64, title string, username *string, settingsPatch map[string]any) (*entities.Channel, bool, error) {
	db := database.FromContext(ctx, r.db)

	var channel entities.Channel
	result := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tg_chat_id = ?", tgChatID).
		First(&channel)

	if result.Error == nil {
		channel.Title = title
		channel.Username = username
		if err := channel.MergeSettings(settingsPatch); err != nil {
			return nil, false, channelerrors.ErrDatabaseOperation
		}
		if err := db.WithContext(ctx).Save(&channel).Error; err != nil {
			return nil, false, channelerrors.ErrDatabaseOperation
		}
		return &channel, false, nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, false, channelerrors.ErrDatabaseOperation
	}

	channel = entities.Channel{
		TgChatID: tgChatID,
		Title:    title,
		Username: username,
	}
	if err := channel.MergeSettings(settingsPatch); err != nil {
		return nil, false, channelerrors.ErrDatabaseOperation
	}
	if channel.SettingsJSON == "" {
		channel.SettingsJSON = "{}"
	}

	if err := db.WithContext(ctx).Create(&channel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, channelerrors.ErrChannelExists
		}
		return nil, false, channelerrors.ErrDatabaseOperation
	}

	return &channel, true, nil
}

// LinkUser creates the (user, channel) link or overwrites its role
func (r *channelRepository) LinkUser(ctx context.Context, userID int64, channelID uint, role string) (*entities.UserChannelLink, error) {
	db := database.FromContext(ctx, r.db)

	link := entities.UserChannelLink{
		UserID:    userID,
		ChannelID: channelID,
		Role:      role,
	}

	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "channel_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
		}).
		Create(&link)
	if result.Error != nil {
		return nil, channelerrors.ErrDatabaseOperation
	}

	return &link, nil
}

// GetMemberRole returns the user's role on the channel
func (r *channelRepository) GetMemberRole(ctx context.Context, userID int64, channelID uint) (string, error) {
	db := database.FromContext(ctx, r.db)

	var link entities.UserChannelLink
	result := db.WithContext(ctx).
		Where("user_id = ? AND channel_id = ?", userID, channelID).
		First(&link)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", channelerrors.MembershipNotFound(userID)
		}
		return "", channelerrors.ErrDatabaseOperation
	}

	return link.Role, nil
}
