package buissines

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/deanogram/ALT-Controller-bot/config"
	auditdeps "github.com/deanogram/ALT-Controller-bot/internal/domain/audit/deps"
	auditentities "github.com/deanogram/ALT-Controller-bot/internal/domain/audit/entities"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/post/deps"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/post/dto"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/post/entities"
	posterrors "github.com/deanogram/ALT-Controller-bot/internal/domain/post/errors"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/rbac"
	"github.com/deanogram/ALT-Controller-bot/internal/infrastructure/metrics"
	pkgerrors "github.com/deanogram/ALT-Controller-bot/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	actionPostStatusChanged = "post_status_changed"

	targetTypePost = "post"
)

// UseCase implements post business logic
type UseCase struct {
	postRepo  deps.PostRepository
	roles     deps.MemberRoleGetter
	auditRepo deps.AuditRepository
	tx        deps.TxManager
	publisher auditdeps.EventPublisher
	defaults  *config.ChannelDefaultsConfig
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewUseCase creates a new post use case
func NewUseCase(
	postRepo deps.PostRepository,
	roles deps.MemberRoleGetter,
	auditRepo deps.AuditRepository,
	tx deps.TxManager,
	publisher auditdeps.EventPublisher,
	defaults *config.ChannelDefaultsConfig,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		postRepo:  postRepo,
		roles:     roles,
		auditRepo: auditRepo,
		tx:        tx,
		publisher: publisher,
		defaults:  defaults,
		metrics:   m,
		logger:    logger,
	}
}

// CreateDraft creates a new post in draft status. An empty channel list is
// legal here; it only blocks the post from leaving draft later
func (u *UseCase) CreateDraft(ctx context.Context, req *dto.CreateDraftRequest) (*entities.Post, error) {
	parseMode := req.ParseMode
	if parseMode == "" {
		parseMode = entities.ParseModeHTML
	}
	if parseMode != entities.ParseModeHTML && parseMode != entities.ParseModeMarkdown && parseMode != entities.ParseModeNone {
		return nil, posterrors.ErrInvalidParseMode
	}

	reactions := req.Reactions
	if reactions == nil {
		reactions = u.defaults.DefaultReactions
	}
	reactionsJSON, err := json.Marshal(reactions)
	if err != nil {
		return nil, pkgerrors.NewValidationError("invalid reaction set")
	}
	encodedReactions := string(reactionsJSON)

	post := &entities.Post{
		AuthorUserID:  req.AuthorUserID,
		Status:        string(entities.StatusDraft),
		ScheduledAt:   req.ScheduledAt,
		Text:          req.Text,
		ParseMode:     parseMode,
		MediaJSON:     req.MediaJSON,
		ButtonsJSON:   req.ButtonsJSON,
		ReactionsJSON: &encodedReactions,
	}
	if err := post.SetChannelIDs(req.ChannelIDs); err != nil {
		return nil, pkgerrors.NewValidationError("invalid channel id list")
	}

	if err := u.postRepo.Create(ctx, post); err != nil {
		u.logger.Error().Err(err).
			Int64("author_user_id", req.AuthorUserID).
			Msg("Failed to create draft")
		return nil, err
	}

	u.metrics.PostsCreated.Inc()
	u.logger.Info().
		Uint("post_id", post.ID).
		Int64("author_user_id", req.AuthorUserID).
		Int("channels", len(req.ChannelIDs)).
		Msg("Draft created")

	return post, nil
}

// UpdateDraft applies a partial content patch to the post. Status is never
// touched here; status changes go through Transition
func (u *UseCase) UpdateDraft(ctx context.Context, postID uint, patch *dto.PostPatch) (*entities.Post, error) {
	fields := make(map[string]any)
	if patch.ChannelIDs != nil {
		encoded, err := json.Marshal(patch.ChannelIDs)
		if err != nil {
			return nil, pkgerrors.NewValidationError("invalid channel id list")
		}
		fields["channel_ids"] = string(encoded)
	}
	if patch.Text != nil {
		fields["text"] = *patch.Text
	}
	if patch.ParseMode != nil {
		mode := *patch.ParseMode
		if mode != entities.ParseModeHTML && mode != entities.ParseModeMarkdown && mode != entities.ParseModeNone {
			return nil, posterrors.ErrInvalidParseMode
		}
		fields["parse_mode"] = mode
	}
	if patch.MediaJSON != nil {
		fields["media_json"] = *patch.MediaJSON
	}
	if patch.ButtonsJSON != nil {
		fields["buttons_json"] = *patch.ButtonsJSON
	}
	if patch.ReactionsJSON != nil {
		fields["reactions_json"] = *patch.ReactionsJSON
	}
	if patch.ScheduledAt != nil {
		fields["scheduled_at"] = *patch.ScheduledAt
	}
	if patch.PreviewMessageID != nil {
		fields["preview_message_id"] = *patch.PreviewMessageID
	}

	post, err := u.postRepo.UpdateFields(ctx, postID, fields)
	if err != nil {
		u.logger.Error().Err(err).
			Uint("post_id", postID).
			Msg("Failed to update draft")
		return nil, err
	}
	return post, nil
}

// Transition moves the post to a new status. The row is locked for the
// duration of the transaction, the state machine is checked against the
// locked status, and the audit entry commits atomically with the change.
// Actors other than the author need at least editor on every target channel
func (u *UseCase) Transition(ctx context.Context, actorUserID int64, postID uint, to entities.Status) (*entities.Post, error) {
	if !to.Valid() {
		return nil, pkgerrors.NewValidationError("unknown status: " + string(to))
	}

	var (
		post  *entities.Post
		entry *auditentities.AuditEntry
	)
	err := u.tx.RunInTx(ctx, func(ctx context.Context) error {
		locked, err := u.postRepo.GetByIDForUpdate(ctx, postID)
		if err != nil {
			return err
		}

		from := entities.Status(locked.Status)
		if !entities.CanTransition(from, to) {
			return pkgerrors.NewStateTransitionError(string(from), string(to))
		}

		channelIDs, err := locked.ChannelIDs()
		if err != nil {
			return posterrors.ErrDatabaseOperation
		}
		if from == entities.StatusDraft && to != entities.StatusDeleted && len(channelIDs) == 0 {
			return posterrors.ErrEmptyChannelList
		}

		if actorUserID != locked.AuthorUserID {
			// a channel-less draft is only the author's to touch
			if len(channelIDs) == 0 {
				u.metrics.PermissionDenials.WithLabelValues(string(rbac.RoleEditor)).Inc()
				return pkgerrors.NewPermissionError("none", string(rbac.RoleEditor))
			}
			for _, channelID := range channelIDs {
				if err := u.ensureRole(ctx, actorUserID, channelID, rbac.RoleEditor); err != nil {
					return err
				}
			}
		}

		if err := u.postRepo.UpdateStatus(ctx, postID, to); err != nil {
			return err
		}

		postTargetID := int64(postID)
		targetType := targetTypePost
		entry, err = auditentities.NewEntry(&actorUserID, actionPostStatusChanged, &targetType, &postTargetID, map[string]any{
			"from": string(from),
			"to":   string(to),
		})
		if err != nil {
			return err
		}
		if err := u.auditRepo.Append(ctx, entry); err != nil {
			return err
		}

		locked.Status = string(to)
		post = locked
		return nil
	})
	if err != nil {
		u.logger.Error().Err(err).
			Uint("post_id", postID).
			Int64("actor_user_id", actorUserID).
			Str("to", string(to)).
			Msg("Failed to transition post")
		return nil, err
	}

	u.metrics.StatusTransitions.WithLabelValues(string(to)).Inc()
	u.publishAudit(ctx, entry)

	u.logger.Info().
		Uint("post_id", postID).
		Str("to", string(to)).
		Msg("Post status changed")

	return post, nil
}

// ListUserPosts lists the author's posts newest first
func (u *UseCase) ListUserPosts(ctx context.Context, authorUserID int64, status *entities.Status) ([]entities.Post, error) {
	if status != nil && !status.Valid() {
		return nil, pkgerrors.NewValidationError("unknown status: " + string(*status))
	}

	posts, err := u.postRepo.ListByAuthor(ctx, authorUserID, status)
	if err != nil {
		u.logger.Error().Err(err).
			Int64("author_user_id", authorUserID).
			Msg("Failed to list user posts")
		return nil, err
	}
	return posts, nil
}

// GetPost retrieves one post
func (u *UseCase) GetPost(ctx context.Context, postID uint) (*entities.Post, error) {
	return u.postRepo.GetByID(ctx, postID)
}

func (u *UseCase) ensureRole(ctx context.Context, actorUserID int64, channelID uint, required rbac.Role) error {
	raw, err := u.roles.GetMemberRole(ctx, actorUserID, channelID)
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
		return err
	}
	return nil
}

func (u *UseCase) publishAudit(ctx context.Context, entry *auditentities.AuditEntry) {
	if u.publisher == nil || entry == nil {
		return
	}
	if err := u.publisher.PublishAuditEvent(ctx, entry); err != nil && !errors.Is(err, context.Canceled) {
		u.metrics.AuditPublishErrors.Inc()
	}
}
