package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/deanogram/ALT-Controller-bot/internal/domain/post/deps"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/post/entities"
	posterrors "github.com/deanogram/ALT-Controller-bot/internal/domain/post/errors"
	"github.com/deanogram/ALT-Controller-bot/internal/infrastructure/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) deps.PostRepository {
	return &postRepository{
		db: db,
	}
}

// Create inserts a new post; it never deduplicates
func (r *postRepository) Create(ctx context.Context, post *entities.Post) error {
	db := database.FromContext(ctx, r.db)

	if err := db.WithContext(ctx).Create(post).Error; err != nil {
		return posterrors.ErrDatabaseOperation
	}
	return nil
}

// GetByID retrieves a post by ID
func (r *postRepository) GetByID(ctx context.Context, id uint) (*entities.Post, error) {
	db := database.FromContext(ctx, r.db)

	var post entities.Post
	result := db.WithContext(ctx).First(&post, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, posterrors.PostNotFound(int64(id))
		}
		return nil, posterrors.ErrDatabaseOperation
	}
	return &post, nil
}

// GetByIDForUpdate retrieves a post holding a row lock so concurrent status
// changes on the same post serialize on the database
func (r *postRepository) GetByIDForUpdate(ctx context.Context, id uint) (*entities.Post, error) {
	db := database.FromContext(ctx, r.db)

	var post entities.Post
	result := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&post, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, posterrors.PostNotFound(int64(id))
		}
		return nil, posterrors.ErrDatabaseOperation
	}
	return &post, nil
}

// UpdateFields applies a partial field patch and refreshes updated_at
func (r *postRepository) UpdateFields(ctx context.Context, id uint, patch map[string]any) (*entities.Post, error) {
	db := database.FromContext(ctx, r.db)

	if _, ok := patch["status"]; ok {
		return nil, posterrors.ErrStatusNotPatchable
	}

	fields := make(map[string]any, len(patch)+1)
	for column, value := range patch {
		fields[column] = value
	}
	fields["updated_at"] = time.Now().UTC()

	result := db.WithContext(ctx).
		Model(&entities.Post{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return nil, posterrors.ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return nil, posterrors.PostNotFound(int64(id))
	}

	return r.GetByID(ctx, id)
}

// UpdateStatus sets the post status and refreshes updated_at
func (r *postRepository) UpdateStatus(ctx context.Context, id uint, status entities.Status) error {
	db := database.FromContext(ctx, r.db)

	result := db.WithContext(ctx).
		Model(&entities.Post{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return posterrors.ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return posterrors.PostNotFound(int64(id))
	}
	return nil
}

// ListByAuthor lists the author's posts newest first
func (r *postRepository) ListByAuthor(ctx context.Context, authorUserID int64, status *entities.Status) ([]entities.Post, error) {
	db := database.FromContext(ctx, r.db)

	posts := make([]entities.Post, 0)
	query := db.WithContext(ctx).
		Where("author_user_id = ?", authorUserID).
		Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	if err := query.Find(&posts).Error; err != nil {
		return nil, posterrors.ErrDatabaseOperation
	}
	return posts, nil
}
