package buissines

import (
	"context"
	"errors"

	auditdeps "github.com/deanogram/ALT-Controller-bot/internal/domain/audit/deps"
	auditentities "github.com/deanogram/ALT-Controller-bot/internal/domain/audit/entities"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/channel/deps"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/channel/dto"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/channel/entities"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/rbac"
	"github.com/deanogram/ALT-Controller-bot/internal/infrastructure/metrics"
	pkgerrors "github.com/deanogram/ALT-Controller-bot/pkg/errors"
	"github.com/deanogram/ALT-Controller-bot/pkg/mapfn"
	"github.com/rs/zerolog"
)

const (
	actionChannelRegistered = "channel_registered"
	actionChannelUpdated    = "channel_updated"
	actionRoleAssigned      = "role_assigned"

	targetTypeChannel = "channel"
)

// UseCase implements channel business logic
type UseCase struct {
	channelRepo deps.ChannelRepository
	auditRepo   deps.AuditRepository
	tx          deps.TxManager
	publisher   auditdeps.EventPublisher
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewUseCase creates a new channel use case
func NewUseCase(
	channelRepo deps.ChannelRepository,
	auditRepo deps.AuditRepository,
	tx deps.TxManager,
	publisher auditdeps.EventPublisher,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		channelRepo: channelRepo,
		auditRepo:   auditRepo,
		tx:          tx,
		publisher:   publisher,
		metrics:     m,
		logger:      logger,
	}
}

// ListUserChannels lists the caller's channels ordered by title
func (u *UseCase) ListUserChannels(ctx context.Context, userID int64) ([]entities.Channel, error) {
	channels, err := u.channelRepo.GetUserChannels(ctx, userID)
	if err != nil {
		u.logger.Error().Err(err).
			Int64("user_id", userID).
			Msg("Failed to list user channels")
		return nil, err
	}
	return channels, nil
}

// ListChannelOptions lists the caller's channels as compact keyboard options
func (u *UseCase) ListChannelOptions(ctx context.Context, userID int64) ([]dto.ChannelOption, error) {
	channels, err := u.ListUserChannels(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapfn.ConvertSlice(channels, func(ch entities.Channel) dto.ChannelOption {
		return dto.ChannelOption{ID: ch.ID, Title: ch.Title}
	}), nil
}

// RegisterChannel upserts the channel and, on first registration, links the
// actor as its owner. A concurrent registration losing the unique-index race
// is retried once: the winner has already created the row the retry updates
func (u *UseCase) RegisterChannel(ctx context.Context, req *dto.RegisterChannelRequest) (*entities.Channel, error) {
	var (
		channel *entities.Channel
		entry   *auditentities.AuditEntry
	)

	run := func(ctx context.Context) error {
		ch, created, err := u.channelRepo.Upsert(ctx, req.TgChatID, req.Title, req.Username, req.Settings)
		if err != nil {
			return err
		}

		action := actionChannelUpdated
		if created {
			action = actionChannelRegistered
			if _, err := u.channelRepo.LinkUser(ctx, req.ActorUserID, ch.ID, string(rbac.RoleOwner)); err != nil {
				return err
			}
		}

		channelID := int64(ch.ID)
		targetType := targetTypeChannel
		entry, err = auditentities.NewEntry(&req.ActorUserID, action, &targetType, &channelID, map[string]any{
			"tg_chat_id": req.TgChatID,
			"title":      req.Title,
		})
		if err != nil {
			return err
		}
		if err := u.auditRepo.Append(ctx, entry); err != nil {
			return err
		}

		channel = ch
		return nil
	}

	err := u.tx.RunInTx(ctx, run)
	if err != nil && pkgerrors.IsConflictError(err) {
		u.metrics.UpsertConflicts.Inc()
		u.logger.Warn().
			Int64("tg_chat_id", req.TgChatID).
			Msg("Channel upsert lost creation race, retrying once")
		err = u.tx.RunInTx(ctx, run)
	}
	if err != nil {
		u.logger.Error().Err(err).
			Int64("tg_chat_id", req.TgChatID).
			Int64("actor_user_id", req.ActorUserID).
			Msg("Failed to register channel")
		return nil, err
	}

	if entry.Action == actionChannelRegistered {
		u.metrics.ChannelsRegistered.Inc()
	} else {
		u.metrics.ChannelsUpdated.Inc()
	}
	u.publishAudit(ctx, entry)

	u.logger.Info().
		Int64("tg_chat_id", req.TgChatID).
		Uint("channel_id", channel.ID).
		Str("action", entry.Action).
		Msg("Channel registered")

	return channel, nil
}

// SetMemberRole assigns a role on the channel. The actor must hold at least
// admin on the same channel; the assignment itself may escalate or
// de-escalate the target freely
func (u *UseCase) SetMemberRole(ctx context.Context, req *dto.SetMemberRoleRequest) (*entities.UserChannelLink, error) {
	role, err := rbac.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	if err := u.ensureRole(ctx, req.ActorUserID, req.ChannelID, rbac.RoleAdmin); err != nil {
		return nil, err
	}

	var (
		link  *entities.UserChannelLink
		entry *auditentities.AuditEntry
	)
	err = u.tx.RunInTx(ctx, func(ctx context.Context) error {
		link, err = u.channelRepo.LinkUser(ctx, req.TargetUserID, req.ChannelID, string(role))
		if err != nil {
			return err
		}

		channelID := int64(req.ChannelID)
		targetType := targetTypeChannel
		entry, err = auditentities.NewEntry(&req.ActorUserID, actionRoleAssigned, &targetType, &channelID, map[string]any{
			"target_user_id": req.TargetUserID,
			"role":           string(role),
		})
		if err != nil {
			return err
		}
		return u.auditRepo.Append(ctx, entry)
	})
	if err != nil {
		u.logger.Error().Err(err).
			Int64("actor_user_id", req.ActorUserID).
			Int64("target_user_id", req.TargetUserID).
			Uint("channel_id", req.ChannelID).
			Msg("Failed to assign member role")
		return nil, err
	}

	u.metrics.RoleAssignments.Inc()
	u.publishAudit(ctx, entry)

	u.logger.Info().
		Int64("target_user_id", req.TargetUserID).
		Uint("channel_id", req.ChannelID).
		Str("role", string(role)).
		Msg("Member role assigned")

	return link, nil
}

// GetMemberRole returns the caller's role on the channel
func (u *UseCase) GetMemberRole(ctx context.Context, userID int64, channelID uint) (rbac.Role, error) {
	raw, err := u.channelRepo.GetMemberRole(ctx, userID, channelID)
	if err != nil {
		return "", err
	}
	return rbac.ParseRole(raw)
}

// ensureRole resolves the actor's role on the channel and checks it against
// required. A missing membership is reported as a permission failure, not as
// NotFound, so outsiders learn nothing about the channel
func (u *UseCase) ensureRole(ctx context.Context, actorUserID int64, channelID uint, required rbac.Role) error {
	raw, err := u.channelRepo.GetMemberRole(ctx, actorUserID, channelID)
	if err != nil {
		if pkgerrors.IsNotFoundError(err) {
			u.metrics.PermissionDenials.WithLabelValues(string(required)).Inc()
			return pkgerrors.NewPermissionError("none", string(required))
		}
		return err
	}

	acting, err := rbac.ParseRole(raw)
	if err != nil {
		return err
	}

	if err := rbac.Ensure(acting, required); err != nil {
		u.metrics.PermissionDenials.WithLabelValues(string(required)).Inc()
		u.logger.Warn().
			Int64("actor_user_id", actorUserID).
			Uint("channel_id", channelID).
			Str("acting_role", string(acting)).
			Str("required_role", string(required)).
			Msg("Permission denied")
		return err
	}
	return nil
}

// publishAudit sends the committed audit entry to the event stream.
// Publishing is best-effort and never fails the calling operation
func (u *UseCase) publishAudit(ctx context.Context, entry *auditentities.AuditEntry) {
	if u.publisher == nil || entry == nil {
		return
	}
	if err := u.publisher.PublishAuditEvent(ctx, entry); err != nil && !errors.Is(err, context.Canceled) {
		u.metrics.AuditPublishErrors.Inc()
	}
}
