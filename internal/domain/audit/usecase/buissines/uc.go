package buissines

import (
	"context"
	"errors"

	"github.com/deanogram/ALT-Controller-bot/internal/domain/audit/deps"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/audit/entities"
	auditerrors "github.com/deanogram/ALT-Controller-bot/internal/domain/audit/errors"
	"github.com/deanogram/ALT-Controller-bot/internal/infrastructure/metrics"
	pkgerrors "github.com/deanogram/ALT-Controller-bot/pkg/errors"
	"github.com/rs/zerolog"
)

// UseCase implements audit logging
type UseCase struct {
	auditRepo deps.AuditRepository
	publisher deps.EventPublisher
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewUseCase creates a new audit use case
func NewUseCase(
	auditRepo deps.AuditRepository,
	publisher deps.EventPublisher,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		auditRepo: auditRepo,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// Record appends an audit entry and publishes it to the event stream. The
// append fails only on storage errors; publishing is best-effort and never
// fails the record
func (u *UseCase) Record(ctx context.Context, userID *int64, action string, targetType *string, targetID *int64, extra map[string]any) (*entities.AuditEntry, error) {
	if action == "" {
		return nil, auditerrors.ErrEmptyAction
	}

	entry, err := entities.NewEntry(userID, action, targetType, targetID, extra)
	if err != nil {
		return nil, pkgerrors.NewValidationError("audit extra payload is not serializable")
	}

	if err := u.auditRepo.Append(ctx, entry); err != nil {
		u.logger.Error().Err(err).
			Str("action", action).
			Msg("Failed to record audit entry")
		return nil, err
	}

	u.metrics.AuditEntriesTotal.Inc()

	if u.publisher != nil {
		if err := u.publisher.PublishAuditEvent(ctx, entry); err != nil && !errors.Is(err, context.Canceled) {
			u.metrics.AuditPublishErrors.Inc()
		}
	}

	u.logger.Debug().
		Str("action", action).
		Uint("entry_id", entry.ID).
		Msg("Audit entry recorded")

	return entry, nil
}

// ListRecent lists the newest entries up to limit
func (u *UseCase) ListRecent(ctx context.Context, limit int) ([]entities.AuditEntry, error) {
	return u.auditRepo.ListRecent(ctx, limit)
}

// ListForTarget lists entries touching one target, newest first
func (u *UseCase) ListForTarget(ctx context.Context, targetType string, targetID int64) ([]entities.AuditEntry, error) {
	return u.auditRepo.ListForTarget(ctx, targetType, targetID)
}
