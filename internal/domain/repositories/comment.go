package repositories

import (
	"context"

	"inkwell/internal/domain/models"
)

// CommentRepository persists comments and their tree structure.
type CommentRepository interface {
	// Create inserts a comment and fills in generated fields.
	Create(ctx context.Context, comment *models.Comment) error

	// GetByID retrieves a single comment.
	GetByID(ctx context.Context, id string) (*models.Comment, error)

	// ListByPost retrieves all comments on a post, oldest first.
	ListByPost(ctx context.Context, postID string) ([]models.Comment, error)

	// CountByPost returns the number of comments on a post.
	CountByPost(ctx context.Context, postID string) (int, error)

	// ClearAuthor nulls the author tag on every comment written by the
	// given agent author, preserving the comments themselves.
	ClearAuthor(ctx context.Context, author *models.CommentAuthor) error
}
