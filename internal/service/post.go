package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"inkwell/internal/config"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
	"inkwell/internal/domain/services"
	"inkwell/internal/personas"
	"inkwell/internal/utils"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// postService implements the PostService interface
type postService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	agentRepo   repositories.AgentRepository
	builtins    *personas.Registry
	scheduler   services.Scheduler
	cfg         *config.Config
	logger      *slog.Logger
}

// NewPostService creates a new post service
func NewPostService(
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	agentRepo repositories.AgentRepository,
	builtins *personas.Registry,
	scheduler services.Scheduler,
	cfg *config.Config,
	logger *slog.Logger,
) services.PostService {
	return &postService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		agentRepo:   agentRepo,
		builtins:    builtins,
		scheduler:   scheduler,
		cfg:         cfg,
		logger:      logger,
	}
}

// CreatePost creates a post. A non-nil PublishedAt publishes immediately
// and schedules reader comment jobs.
func (s *postService) CreatePost(ctx context.Context, req *services.CreatePostRequest) (*models.Post, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	post := &models.Post{
		AuthorID:    req.AuthorID,
		Title:       strings.TrimSpace(req.Title),
		Slug:        req.Slug,
		Body:        req.Body,
		PublishedAt: req.PublishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("post created",
		"id", post.ID,
		"slug", post.Slug,
		"author_id", post.AuthorID,
		"published", post.Published(),
	)

	if post.Published() {
		s.scheduleReaderComments(ctx, post.ID)
	}

	return post, nil
}

// GetPost retrieves a post owned by the caller
func (s *postService) GetPost(ctx context.Context, id, callerID string) (*models.Post, error) {
	return s.getOwnedPost(ctx, id, callerID)
}

// GetPostBySlug retrieves the caller's post by slug with its comments
// and resolved author display data.
func (s *postService) GetPostBySlug(ctx context.Context, slug, callerID string) (*models.PostWithComments, error) {
	post, err := s.postRepo.GetBySlug(ctx, slug, callerID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	decorated := make([]models.CommentWithAuthor, 0, len(comments))
	for _, comment := range comments {
		decorated = append(decorated, s.resolveAuthor(ctx, comment))
	}

	return &models.PostWithComments{
		Post:               *post,
		ReadingTimeMinutes: utils.ReadingTimeMinutes(post.Body),
		Comments:           decorated,
	}, nil
}

// ListPosts retrieves all posts owned by the caller
func (s *postService) ListPosts(ctx context.Context, callerID string) ([]models.PostListItem, error) {
	posts, err := s.postRepo.List(ctx, callerID)
	if err != nil {
		return nil, err
	}

	items := make([]models.PostListItem, 0, len(posts))
	for _, post := range posts {
		items = append(items, models.PostListItem{
			Post:               post,
			ReadingTimeMinutes: utils.ReadingTimeMinutes(post.Body),
		})
	}

	return items, nil
}

// UpdatePost changes title/body of an owned post
func (s *postService) UpdatePost(ctx context.Context, id, callerID string, req *services.UpdatePostRequest) (*models.Post, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	post, err := s.getOwnedPost(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	// Published posts are immutable; only drafts can be edited.
	if post.Published() {
		return nil, fmt.Errorf("%w: published posts cannot be edited", domain.ErrValidation)
	}

	post.Title = strings.TrimSpace(req.Title)
	post.Body = req.Body
	post.UpdatedAt = time.Now()

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("post updated", "id", post.ID, "author_id", callerID)

	return post, nil
}

// PublishPost marks a draft published and schedules reader comments.
// A second publish fails with ErrAlreadyPublished and leaves the
// original timestamp untouched.
func (s *postService) PublishPost(ctx context.Context, id, callerID string) (*models.Post, error) {
	post, err := s.getOwnedPost(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	if post.Published() {
		return nil, fmt.Errorf("post %s: %w", id, domain.ErrAlreadyPublished)
	}

	publishedAt := time.Now()
	if err := s.postRepo.Publish(ctx, id, publishedAt); err != nil {
		return nil, err
	}
	post.PublishedAt = &publishedAt
	post.UpdatedAt = publishedAt

	s.logger.Info("post published", "id", post.ID, "author_id", callerID)

	s.scheduleReaderComments(ctx, post.ID)

	return post, nil
}

// DeletePost removes an owned post. Its comments cascade at the schema
// level. Reader jobs already scheduled against the post are not
// cancelled; they fail on the missing row when they fire.
func (s *postService) DeletePost(ctx context.Context, id, callerID string) error {
	if _, err := s.getOwnedPost(ctx, id, callerID); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("post deleted", "id", id, "author_id", callerID)

	return nil
}

// scheduleReaderComments enqueues one comment job per registered agent
// and built-in persona, each with an independently randomized delay.
// Scheduling failures are logged, not propagated: publish has already
// happened.
func (s *postService) scheduleReaderComments(ctx context.Context, postID string) {
	agents, err := s.agentRepo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list agents for scheduling", "post_id", postID, "error", err)
		agents = nil
	}

	refs := make([]services.AgentCommentArgs, 0, len(agents)+s.builtins.Len())
	for _, agent := range agents {
		refs = append(refs, services.AgentCommentArgs{
			PostID:    postID,
			AgentRef:  agent.ID,
			AgentType: string(models.AuthorTypeAgent),
		})
	}
	for _, persona := range s.builtins.List() {
		refs = append(refs, services.AgentCommentArgs{
			PostID:    postID,
			AgentRef:  persona.Ref,
			AgentType: string(models.AuthorTypeBuiltinAgent),
		})
	}

	for _, args := range refs {
		delay := s.commentDelay()
		jobID, err := s.scheduler.Schedule(ctx, services.JobAgentComment, args, delay)
		if err != nil {
			s.logger.Error("failed to schedule reader comment",
				"post_id", postID,
				"agent_ref", args.AgentRef,
				"error", err,
			)
			continue
		}

		s.logger.Debug("reader comment scheduled",
			"post_id", postID,
			"agent_ref", args.AgentRef,
			"job_id", jobID,
			"delay", delay.String(),
		)
	}
}

// commentDelay picks a random delay in the configured window, collapsed
// to zero under the debug flag.
func (s *postService) commentDelay() time.Duration {
	if s.cfg.Debug {
		return 0
	}

	min := s.cfg.CommentDelayMin
	max := s.cfg.CommentDelayMax
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)+1))
}

// getOwnedPost loads a post and enforces ownership
func (s *postService) getOwnedPost(ctx context.Context, id, callerID string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != callerID {
		return nil, fmt.Errorf("post %s: %w", id, domain.ErrForbidden)
	}

	return post, nil
}

// resolveAuthor decorates a comment with author display data. Unknown
// or tombstoned authors render as authorless.
func (s *postService) resolveAuthor(ctx context.Context, comment models.Comment) models.CommentWithAuthor {
	out := models.CommentWithAuthor{Comment: comment}

	author := comment.Author
	if author == nil {
		return out
	}

	switch author.Type {
	case models.AuthorTypeAgent:
		agent, err := s.agentRepo.GetByID(ctx, author.ID)
		if err != nil {
			return out
		}
		out.AuthorName = agent.Name
		out.AuthorAvatarURL = agent.AvatarURL
	case models.AuthorTypeBuiltinAgent:
		if persona, ok := s.builtins.Get(author.ID); ok {
			out.AuthorName = persona.Name
			out.AuthorAvatarURL = persona.AvatarURL
		}
	}

	return out
}

func (s *postService) validateCreateRequest(req *services.CreatePostRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.AuthorID, validation.Required),
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxPostTitleLength),
		),
		validation.Field(&req.Slug,
			validation.Required,
			validation.Length(1, config.MaxPostSlugLength),
			validation.Match(slugPattern).Error("must be lowercase letters, digits and hyphens"),
		),
		validation.Field(&req.Body,
			validation.Required,
			validation.Length(1, config.MaxPostBodyLength),
		),
	)
}

func (s *postService) validateUpdateRequest(req *services.UpdatePostRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxPostTitleLength),
		),
		validation.Field(&req.Body,
			validation.Required,
			validation.Length(1, config.MaxPostBodyLength),
		),
	)
}
