package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
	"inkwell/internal/domain/services"
	"inkwell/internal/personas"
)

// readerService implements the ReaderService interface: the job bodies
// that generate agent comments and replies. Never exposed over HTTP.
type readerService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	agentRepo   repositories.AgentRepository
	builtins    *personas.Registry
	generator   services.CommentGenerator
	comments    services.CommentService
	logger      *slog.Logger
}

// NewReaderService creates a new reader service
func NewReaderService(
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	agentRepo repositories.AgentRepository,
	builtins *personas.Registry,
	generator services.CommentGenerator,
	comments services.CommentService,
	logger *slog.Logger,
) services.ReaderService {
	return &readerService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		agentRepo:   agentRepo,
		builtins:    builtins,
		generator:   generator,
		comments:    comments,
		logger:      logger,
	}
}

// CommentOnPost generates and inserts a root comment on the post by the
// referenced persona. The post may have been deleted between scheduling
// and execution; that surfaces as ErrNotFound and fails the job.
func (s *readerService) CommentOnPost(ctx context.Context, args *services.AgentCommentArgs) error {
	post, err := s.postRepo.GetByID(ctx, args.PostID)
	if err != nil {
		return err
	}

	persona, err := s.resolvePersona(ctx, args.AgentRef, args.AgentType)
	if err != nil {
		return err
	}

	content, err := s.generator.GenerateComment(ctx, persona, post)
	if err != nil {
		return fmt.Errorf("generate comment for post %s: %w", post.ID, err)
	}

	comment := &models.Comment{
		PostID:    post.ID,
		Author:    persona.Author(),
		Content:   content,
		Upvotes:   0,
		CreatedAt: time.Now(),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return err
	}

	s.logger.Info("reader comment created",
		"comment_id", comment.ID,
		"post_id", post.ID,
		"persona", persona.Name,
	)

	return nil
}

// ReplyToComment generates and inserts the persona's reply to a user
// comment, using the full root-to-leaf thread as context.
func (s *readerService) ReplyToComment(ctx context.Context, args *services.AgentReplyArgs) error {
	thread, err := s.comments.ThreadToComment(ctx, args.UserCommentID)
	if err != nil {
		return err
	}

	post, err := s.postRepo.GetByID(ctx, thread[0].PostID)
	if err != nil {
		return err
	}

	persona, err := s.resolvePersona(ctx, args.AgentRef, args.AgentType)
	if err != nil {
		return err
	}

	content, err := s.generator.GenerateReply(ctx, persona, post, thread)
	if err != nil {
		return fmt.Errorf("generate reply to comment %s: %w", args.UserCommentID, err)
	}

	reply := &models.Comment{
		PostID:          post.ID,
		ParentCommentID: &args.UserCommentID,
		Author:          persona.Author(),
		Content:         content,
		Upvotes:         0,
		CreatedAt:       time.Now(),
	}

	if err := s.commentRepo.Create(ctx, reply); err != nil {
		return err
	}

	s.logger.Info("reader reply created",
		"comment_id", reply.ID,
		"parent_comment_id", args.UserCommentID,
		"persona", persona.Name,
	)

	return nil
}

// resolvePersona loads a persona from the agents table or the built-in
// registry, depending on the ref's tag.
func (s *readerService) resolvePersona(ctx context.Context, ref, refType string) (*models.Persona, error) {
	switch models.AuthorType(refType) {
	case models.AuthorTypeBuiltinAgent:
		persona, ok := s.builtins.Get(ref)
		if !ok {
			return nil, fmt.Errorf("builtin persona %s: %w", ref, domain.ErrNotFound)
		}
		return persona, nil
	case models.AuthorTypeAgent:
		agent, err := s.agentRepo.GetByID(ctx, ref)
		if err != nil {
			return nil, err
		}
		return models.PersonaFromAgent(agent), nil
	default:
		return nil, fmt.Errorf("unknown persona type '%s'", refType)
	}
}
