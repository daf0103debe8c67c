package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// PostgresPostRepository implements the PostRepository interface
type PostgresPostRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewPostRepository creates a new post repository
func NewPostRepository(config *RepositoryConfig) repositories.PostRepository {
	return &PostgresPostRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new post
func (r *PostgresPostRepository) Create(ctx context.Context, post *models.Post) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (author_id, title, slug, body, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, r.tables.Posts)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		post.AuthorID,
		post.Title,
		post.Slug,
		post.Body,
		post.PublishedAt,
		post.CreatedAt,
		post.UpdatedAt,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("post slug '%s': %w", post.Slug, domain.ErrConflict)
		}
		return fmt.Errorf("create post: %w", err)
	}

	return nil
}

// GetByID retrieves a post by ID
func (r *PostgresPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := fmt.Sprintf(`
		SELECT id, author_id, title, slug, body, published_at, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Posts)

	var post models.Post
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Slug,
		&post.Body,
		&post.PublishedAt,
		&post.CreatedAt,
		&post.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("post %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	return &post, nil
}

// GetBySlug retrieves a post by slug for a given author
func (r *PostgresPostRepository) GetBySlug(ctx context.Context, slug, authorID string) (*models.Post, error) {
	query := fmt.Sprintf(`
		SELECT id, author_id, title, slug, body, published_at, created_at, updated_at
		FROM %s
		WHERE slug = $1 AND author_id = $2
	`, r.tables.Posts)

	var post models.Post
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, slug, authorID).Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Slug,
		&post.Body,
		&post.PublishedAt,
		&post.CreatedAt,
		&post.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("post slug %s: %w", slug, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get post by slug: %w", err)
	}

	return &post, nil
}

// List retrieves all posts for an author, newest first
func (r *PostgresPostRepository) List(ctx context.Context, authorID string) ([]models.Post, error) {
	query := fmt.Sprintf(`
		SELECT id, author_id, title, slug, body, published_at, created_at, updated_at
		FROM %s
		WHERE author_id = $1
		ORDER BY created_at DESC
	`, r.tables.Posts)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var post models.Post
		err := rows.Scan(
			&post.ID,
			&post.AuthorID,
			&post.Title,
			&post.Slug,
			&post.Body,
			&post.PublishedAt,
			&post.CreatedAt,
			&post.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}

	// Return empty slice instead of nil if no posts
	if posts == nil {
		posts = []models.Post{}
	}

	return posts, nil
}

// Update updates a post's title, body and updated_at timestamp
func (r *PostgresPostRepository) Update(ctx context.Context, post *models.Post) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, body = $2, updated_at = $3
		WHERE id = $4
	`, r.tables.Posts)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		post.Title,
		post.Body,
		post.UpdatedAt,
		post.ID,
	)

	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("post %s: %w", post.ID, domain.ErrNotFound)
	}

	return nil
}

// Publish sets published_at iff the post is still a draft. The WHERE
// clause is the publish-once guard: a second call affects zero rows and
// is reported as ErrAlreadyPublished.
func (r *PostgresPostRepository) Publish(ctx context.Context, id string, publishedAt time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET published_at = $1, updated_at = $1
		WHERE id = $2 AND published_at IS NULL
	`, r.tables.Posts)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, publishedAt, id)
	if err != nil {
		return fmt.Errorf("publish post: %w", err)
	}

	if result.RowsAffected() == 0 {
		// Distinguish missing post from already-published post
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("post %s: %w", id, domain.ErrAlreadyPublished)
	}

	return nil
}

// Delete removes a post. Comments cascade via the schema's foreign key.
func (r *PostgresPostRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Posts)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("post %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
