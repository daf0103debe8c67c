package services

import (
	"context"

	"inkwell/internal/domain/models"
)

// ReplyRequest is an authenticated user's reply to an existing comment.
type ReplyRequest struct {
	Content string `json:"content"`
}

// CommentService defines the business logic for comment threading.
type CommentService interface {
	// ReplyAsUser inserts a reply under the parent comment. The parent
	// must exist and its post must belong to the caller. When the parent
	// was written by an agent persona, an agent reply job is scheduled
	// immediately against the new reply.
	ReplyAsUser(ctx context.Context, parentCommentID, callerID string, req *ReplyRequest) (*models.Comment, error)

	// ThreadToComment reconstructs the ancestor chain from the thread
	// root down to the given comment, in root-to-leaf order.
	ThreadToComment(ctx context.Context, commentID string) ([]models.Comment, error)
}

// ReaderService is the job-facing surface: internal comment creation on
// behalf of agent personas. Never exposed as an HTTP route.
type ReaderService interface {
	// CommentOnPost generates and inserts a root comment on the post by
	// the referenced persona.
	CommentOnPost(ctx context.Context, args *AgentCommentArgs) error

	// ReplyToComment generates and inserts the persona's reply to a
	// user comment, using the full thread as context.
	ReplyToComment(ctx context.Context, args *AgentReplyArgs) error
}
