package buissines

import (
	"context"

	"github.com/deanogram/ALT-Controller-bot/internal/domain/stats/deps"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/stats/entities"
	statserrors "github.com/deanogram/ALT-Controller-bot/internal/domain/stats/errors"
	"github.com/deanogram/ALT-Controller-bot/internal/infrastructure/metrics"
	"github.com/rs/zerolog"
)

const (
	signalClick    = "click"
	signalReaction = "reaction"
)

// UseCase implements stats aggregation logic
type UseCase struct {
	statsRepo deps.StatsRepository
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewUseCase creates a new stats use case
func NewUseCase(statsRepo deps.StatsRepository, m *metrics.Metrics, logger zerolog.Logger) *UseCase {
	return &UseCase{
		statsRepo: statsRepo,
		metrics:   m,
		logger:    logger,
	}
}

// IncrementClick adds delta clicks to the (post, channel, button) counter.
// A negative delta is rejected before any write; a zero delta is a no-op
func (u *UseCase) IncrementClick(ctx context.Context, postID, channelID uint, buttonKey string, delta int64) error {
	if delta < 0 {
		return statserrors.ErrNegativeDelta
	}
	if buttonKey == "" {
		return statserrors.ErrEmptyKey
	}
	if delta == 0 {
		return nil
	}

	if err := u.statsRepo.IncrementClick(ctx, postID, channelID, buttonKey, delta); err != nil {
		u.logger.Error().Err(err).
			Uint("post_id", postID).
			Uint("channel_id", channelID).
			Str("button_key", buttonKey).
			Msg("Failed to increment click counter")
		return err
	}

	u.metrics.CounterIncrements.WithLabelValues(signalClick).Inc()
	return nil
}

// IncrementReaction adds delta to the (post, channel, emoji) counter with the
// same contract as IncrementClick
func (u *UseCase) IncrementReaction(ctx context.Context, postID, channelID uint, emoji string, delta int64) error {
	if delta < 0 {
		return statserrors.ErrNegativeDelta
	}
	if emoji == "" {
		return statserrors.ErrEmptyKey
	}
	if delta == 0 {
		return nil
	}

	if err := u.statsRepo.IncrementReaction(ctx, postID, channelID, emoji, delta); err != nil {
		u.logger.Error().Err(err).
			Uint("post_id", postID).
			Uint("channel_id", channelID).
			Str("emoji", emoji).
			Msg("Failed to increment reaction counter")
		return err
	}

	u.metrics.CounterIncrements.WithLabelValues(signalReaction).Inc()
	return nil
}

// GetPostStats returns the click and reaction counters for one post in one
// channel
func (u *UseCase) GetPostStats(ctx context.Context, postID, channelID uint) ([]entities.ClickCounter, []entities.ReactionCounter, error) {
	clicks, err := u.statsRepo.GetClicks(ctx, postID, channelID)
	if err != nil {
		return nil, nil, err
	}
	reactions, err := u.statsRepo.GetReactions(ctx, postID, channelID)
	if err != nil {
		return nil, nil, err
	}
	return clicks, reactions, nil
}
