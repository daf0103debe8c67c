package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"inkwell/internal/config"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
	"inkwell/internal/domain/services"
)

// commentService implements the CommentService interface
type commentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
	scheduler   services.Scheduler
	logger      *slog.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	scheduler services.Scheduler,
	logger *slog.Logger,
) services.CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		scheduler:   scheduler,
		logger:      logger,
	}
}

// ReplyAsUser inserts the caller's reply under the parent comment and,
// when the parent was written by an agent persona, schedules an
// immediate agent reply against the new comment.
func (s *commentService) ReplyAsUser(ctx context.Context, parentCommentID, callerID string, req *services.ReplyRequest) (*models.Comment, error) {
	if err := s.validateReplyRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	parent, err := s.commentRepo.GetByID(ctx, parentCommentID)
	if err != nil {
		return nil, err
	}

	// The parent's post must exist and belong to the caller
	post, err := s.postRepo.GetByID(ctx, parent.PostID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, fmt.Errorf("post %s: %w", post.ID, domain.ErrForbidden)
	}

	reply := &models.Comment{
		PostID:          parent.PostID,
		ParentCommentID: &parent.ID,
		Author:          &models.CommentAuthor{Type: models.AuthorTypeUser, ID: callerID},
		Content:         req.Content,
		Upvotes:         0,
		CreatedAt:       time.Now(),
	}

	if err := s.commentRepo.Create(ctx, reply); err != nil {
		return nil, err
	}

	s.logger.Info("user reply created",
		"comment_id", reply.ID,
		"parent_comment_id", parent.ID,
		"post_id", parent.PostID,
	)

	// Only agent-authored parents get a generated reply; a reply to a
	// user (or tombstoned) comment schedules nothing.
	if parent.Author.IsAgent() {
		args := services.AgentReplyArgs{
			UserCommentID: reply.ID,
			AgentRef:      parent.Author.ID,
			AgentType:     string(parent.Author.Type),
		}
		if _, err := s.scheduler.Schedule(ctx, services.JobAgentReply, args, 0); err != nil {
			// The user's reply is already in; the missing agent reply is
			// the same failure mode as any other failed job.
			s.logger.Error("failed to schedule agent reply",
				"comment_id", reply.ID,
				"agent_ref", parent.Author.ID,
				"error", err,
			)
		}
	}

	return reply, nil
}

// ThreadToComment walks the parent chain from the target comment to the
// thread root and returns the chain in root-to-leaf order. A missing
// parent ends the walk rather than failing it.
func (s *commentService) ThreadToComment(ctx context.Context, commentID string) ([]models.Comment, error) {
	var thread []models.Comment

	currentID := &commentID
	for currentID != nil {
		comment, err := s.commentRepo.GetByID(ctx, *currentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				break
			}
			return nil, err
		}

		// Prepend to maintain root-to-leaf order
		thread = append([]models.Comment{*comment}, thread...)
		currentID = comment.ParentCommentID
	}

	if len(thread) == 0 {
		return nil, fmt.Errorf("comment %s: %w", commentID, domain.ErrNotFound)
	}

	return thread, nil
}

func (s *commentService) validateReplyRequest(req *services.ReplyRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Content,
			validation.Required,
			validation.Length(1, config.MaxCommentLength),
		),
	)
}
