package deps

import (
	"context"

	auditentities "github.com/deanogram/ALT-Controller-bot/internal/domain/audit/entities"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/post/entities"
)

// PostRepository defines the interface for post data access
type PostRepository interface {
	// Create inserts a new post; it never deduplicates
	Create(ctx context.Context, post *entities.Post) error

	// GetByID retrieves a post by ID
	GetByID(ctx context.Context, id uint) (*entities.Post, error)

	// GetByIDForUpdate retrieves a post and locks its row for the duration
	// of the surrounding transaction
	GetByIDForUpdate(ctx context.Context, id uint) (*entities.Post, error)

	// UpdateFields applies a partial field patch and refreshes updated_at.
	// The patch must not contain the status column
	UpdateFields(ctx context.Context, id uint, patch map[string]any) (*entities.Post, error)

	// UpdateStatus sets the post status and refreshes updated_at
	UpdateStatus(ctx context.Context, id uint, status entities.Status) error

	// ListByAuthor lists the author's posts newest first, optionally
	// filtered by status
	ListByAuthor(ctx context.Context, authorUserID int64, status *entities.Status) ([]entities.Post, error)
}

// MemberRoleGetter resolves a user's role on a channel
type MemberRoleGetter interface {
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
