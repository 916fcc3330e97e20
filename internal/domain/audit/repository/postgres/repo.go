package postgres

import (
	"context"

	"github.com/deanogram/ALT-Controller-bot/internal/domain/audit/deps"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/audit/entities"
	auditerrors "github.com/deanogram/ALT-Controller-bot/internal/domain/audit/errors"
	"github.com/deanogram/ALT-Controller-bot/internal/infrastructure/database"
	"gorm.io/gorm"
)

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *gorm.DB) deps.AuditRepository {
	return &auditRepository{
		db: db,
	}
}

// Append appends an audit entry. The table is append-only: no update or
// delete path exists in this service
func (r *auditRepository) Append(ctx context.Context, entry *entities.AuditEntry) error {
	db := database.FromContext(ctx, r.db)

	if err := db.WithContext(ctx).Create(entry).Error; err != nil {
		return auditerrors.ErrDatabaseOperation
	}
	return nil
}

// ListRecent lists the newest entries up to limit
func (r *auditRepository) ListRecent(ctx context.Context, limit int) ([]entities.AuditEntry, error) {
	db := database.FromContext(ctx, r.db)

	entries := make([]entities.AuditEntry, 0)
	query := db.WithContext(ctx).Order("ts DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&entries).Error; err != nil {
		return nil, auditerrors.ErrDatabaseOperation
	}
	return entries, nil
}

// ListForTarget lists entries touching one target, newest first
func (r *auditRepository) ListForTarget(ctx context.Context, targetType string, targetID int64) ([]entities.AuditEntry, error) {
	db := database.FromContext(ctx, r.db)

	entries := make([]entities.AuditEntry, 0)
	result := db.WithContext(ctx).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Order("ts DESC").
		Find(&entries)
	if result.Error != nil {
		return nil, auditerrors.ErrDatabaseOperation
	}
	return entries, nil
}
