package repositories

import (
	"context"
	"time"

	"inkwell/internal/domain/models"
)

// PostRepository persists blog posts.
type PostRepository interface {
	// Create inserts a new post and fills in generated fields.
	Create(ctx context.Context, post *models.Post) error

	// GetByID retrieves a post by id regardless of owner. Callers are
	// responsible for ownership checks.
	GetByID(ctx context.Context, id string) (*models.Post, error)

	// GetBySlug retrieves a post by slug for a given author.
	GetBySlug(ctx context.Context, slug, authorID string) (*models.Post, error)

	// List retrieves all posts for an author, newest first.
	List(ctx context.Context, authorID string) ([]models.Post, error)

	// Update persists title/body changes.
	Update(ctx context.Context, post *models.Post) error

	// Publish sets published_at iff it is currently NULL. Returns
	// domain.ErrAlreadyPublished when the post was already published and
	// domain.ErrNotFound when it does not exist.
	Publish(ctx context.Context, id string, publishedAt time.Time) error

	// Delete removes a post. Comments cascade at the schema level.
	Delete(ctx context.Context, id string) error
}
