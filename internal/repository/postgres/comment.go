package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// PostgresCommentRepository implements the CommentRepository interface.
// The author tag is stored as a (author_type, author_id) column pair and
// resolved into the tagged models.CommentAuthor at scan time; a NULL
// pair is an authorless tombstone.
type PostgresCommentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(config *RepositoryConfig) repositories.CommentRepository {
	return &PostgresCommentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new comment
func (r *PostgresCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (post_id, parent_comment_id, author_type, author_id, content, upvotes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, r.tables.Comments)

	var authorType, authorID *string
	if comment.Author != nil {
		t := string(comment.Author.Type)
		authorType = &t
		authorID = &comment.Author.ID
	}

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		comment.PostID,
		comment.ParentCommentID,
		authorType,
		authorID,
		comment.Content,
		comment.Upvotes,
		comment.CreatedAt,
	).Scan(&comment.ID, &comment.CreatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("comment target: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create comment: %w", err)
	}

	return nil
}

// GetByID retrieves a comment by ID
func (r *PostgresCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := fmt.Sprintf(`
		SELECT id, post_id, parent_comment_id, author_type, author_id, content, upvotes, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Comments)

	executor := GetExecutor(ctx, r.pool)
	comment, err := scanComment(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}

	return comment, nil
}

// ListByPost retrieves all comments on a post, oldest first
func (r *PostgresCommentRepository) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	query := fmt.Sprintf(`
		SELECT id, post_id, parent_comment_id, author_type, author_id, content, upvotes, created_at
		FROM %s
		WHERE post_id = $1
		ORDER BY created_at ASC
	`, r.tables.Comments)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	if comments == nil {
		comments = []models.Comment{}
	}

	return comments, nil
}

// CountByPost returns the number of comments on a post
func (r *PostgresCommentRepository) CountByPost(ctx context.Context, postID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE post_id = $1`, r.tables.Comments)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, postID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}

	return count, nil
}

// ClearAuthor nulls the author tag on every comment written by the given
// author. The comments themselves, and with them the thread shape, are
// preserved.
func (r *PostgresCommentRepository) ClearAuthor(ctx context.Context, author *models.CommentAuthor) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET author_type = NULL, author_id = NULL
		WHERE author_type = $1 AND author_id = $2
	`, r.tables.Comments)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, string(author.Type), author.ID); err != nil {
		return fmt.Errorf("clear comment author: %w", err)
	}

	return nil
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanComment(row rowScanner) (*models.Comment, error) {
	var comment models.Comment
	var authorType, authorID *string

	err := row.Scan(
		&comment.ID,
		&comment.PostID,
		&comment.ParentCommentID,
		&authorType,
		&authorID,
		&comment.Content,
		&comment.Upvotes,
		&comment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if authorType != nil && authorID != nil {
		comment.Author = &models.CommentAuthor{
			Type: models.AuthorType(*authorType),
			ID:   *authorID,
		}
	}

	return &comment, nil
}
