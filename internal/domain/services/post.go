package services

import (
	"context"
	"time"

	"inkwell/internal/domain/models"
)

// CreatePostRequest creates a draft, or publishes immediately when
// PublishedAt is non-nil.
type CreatePostRequest struct {
	AuthorID    string     `json:"-"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Body        string     `json:"body"`
	PublishedAt *time.Time `json:"published_at"`
}

// UpdatePostRequest changes title/body of an existing post.
type UpdatePostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// PostService defines the business logic for post lifecycle operations.
type PostService interface {
	// CreatePost creates a post for the author. Immediate publish
	// schedules reader comment jobs.
	CreatePost(ctx context.Context, req *CreatePostRequest) (*models.Post, error)

	// GetPost retrieves a post owned by the caller.
	GetPost(ctx context.Context, id, callerID string) (*models.Post, error)

	// GetPostBySlug retrieves the caller's post by slug together with
	// its comments and resolved authors.
	GetPostBySlug(ctx context.Context, slug, callerID string) (*models.PostWithComments, error)

	// ListPosts retrieves all posts owned by the caller, each with its
	// reading time.
	ListPosts(ctx context.Context, callerID string) ([]models.PostListItem, error)

	// UpdatePost changes title/body. Owner only.
	UpdatePost(ctx context.Context, id, callerID string, req *UpdatePostRequest) (*models.Post, error)

	// PublishPost marks a draft published and schedules one reader
	// comment job per registered persona. Fails with
	// domain.ErrAlreadyPublished on a second call.
	PublishPost(ctx context.Context, id, callerID string) (*models.Post, error)

	// DeletePost removes a post and all of its comments. Owner only.
	DeletePost(ctx context.Context, id, callerID string) error
}
