package deps

import (
	"context"

	"github.com/deanogram/ALT-Controller-bot/internal/domain/audit/entities"
)

// AuditRepository defines the interface for audit data access
type AuditRepository interface {
	// Append appends an audit entry; entries are never updated or deleted
	Append(ctx context.Context, entry *entities.AuditEntry) error

	// ListRecent lists the newest entries up to limit
	ListRecent(ctx context.Context, limit int) ([]entities.AuditEntry, error)

	// ListForTarget lists entries touching one target, newest first
	ListForTarget(ctx context.Context, targetType string, targetID int64) ([]entities.AuditEntry, error)
}

// EventPublisher defines the interface for publishing recorded audit entries
// to the event stream for downstream analytics
type EventPublisher interface {
	// PublishAuditEvent publishes one recorded entry
	PublishAuditEvent(ctx context.Context, entry *entities.AuditEntry) error

	// Close closes the publisher
	Close() error
}
