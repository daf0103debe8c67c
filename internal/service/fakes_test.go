package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
	"inkwell/internal/domain/services"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memPostRepo is an in-memory PostRepository for service tests.
type memPostRepo struct {
	mu     sync.Mutex
	nextID int
	posts  map[string]*models.Post
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: make(map[string]*models.Post)}
}

func (r *memPostRepo) Create(ctx context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.AuthorID == post.AuthorID && p.Slug == post.Slug {
			return fmt.Errorf("slug %s: %w", post.Slug, domain.ErrConflict)
		}
	}
	r.nextID++
	post.ID = fmt.Sprintf("post-%d", r.nextID)
	clone := *post
	r.posts[post.ID] = &clone
	return nil
}

func (r *memPostRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", id, domain.ErrNotFound)
	}
	clone := *p
	return &clone, nil
}

func (r *memPostRepo) GetBySlug(ctx context.Context, slug, authorID string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.Slug == slug && p.AuthorID == authorID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("slug %s: %w", slug, domain.ErrNotFound)
}

func (r *memPostRepo) List(ctx context.Context, authorID string) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Post
	for _, p := range r.posts {
		if p.AuthorID == authorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memPostRepo) Update(ctx context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[post.ID]; !ok {
		return fmt.Errorf("post %s: %w", post.ID, domain.ErrNotFound)
	}
	clone := *post
	r.posts[post.ID] = &clone
	return nil
}

func (r *memPostRepo) Publish(ctx context.Context, id string, publishedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return fmt.Errorf("post %s: %w", id, domain.ErrNotFound)
	}
	if p.PublishedAt != nil {
		return fmt.Errorf("post %s: %w", id, domain.ErrAlreadyPublished)
	}
	t := publishedAt
	p.PublishedAt = &t
	p.UpdatedAt = publishedAt
	return nil
}

func (r *memPostRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return fmt.Errorf("post %s: %w", id, domain.ErrNotFound)
	}
	delete(r.posts, id)
	return nil
}

// memCommentRepo is an in-memory CommentRepository for service tests.
type memCommentRepo struct {
	mu       sync.Mutex
	nextID   int
	comments map[string]*models.Comment
}

func newMemCommentRepo() *memCommentRepo {
	return &memCommentRepo{comments: make(map[string]*models.Comment)}
}

func (r *memCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	comment.ID = fmt.Sprintf("comment-%d", r.nextID)
	clone := *comment
	r.comments[comment.ID] = &clone
	return nil
}

func (r *memCommentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	clone := *c
	return &clone, nil
}

func (r *memCommentRepo) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Comment
	for i := 1; i <= r.nextID; i++ {
		if c, ok := r.comments[fmt.Sprintf("comment-%d", i)]; ok && c.PostID == postID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memCommentRepo) CountByPost(ctx context.Context, postID string) (int, error) {
	list, _ := r.ListByPost(ctx, postID)
	return len(list), nil
}

func (r *memCommentRepo) ClearAuthor(ctx context.Context, author *models.CommentAuthor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.comments {
		if c.Author != nil && c.Author.Type == author.Type && c.Author.ID == author.ID {
			c.Author = nil
		}
	}
	return nil
}

// memAgentRepo is an in-memory AgentRepository for service tests.
type memAgentRepo struct {
	mu     sync.Mutex
	nextID int
	agents map[string]*models.Agent
}

func newMemAgentRepo() *memAgentRepo {
	return &memAgentRepo{agents: make(map[string]*models.Agent)}
}

func (r *memAgentRepo) Create(ctx context.Context, agent *models.Agent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	agent.ID = fmt.Sprintf("agent-%d", r.nextID)
	clone := *agent
	r.agents[agent.ID] = &clone
	return nil
}

func (r *memAgentRepo) GetByID(ctx context.Context, id string) (*models.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.agents[id]
	if !ok {
		return nil, fmt.Errorf("agent %s: %w", id, domain.ErrNotFound)
	}
	clone := *a
	return &clone, nil
}

func (r *memAgentRepo) List(ctx context.Context) ([]models.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Agent
	for i := 1; i <= r.nextID; i++ {
		if a, ok := r.agents[fmt.Sprintf("agent-%d", i)]; ok {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memAgentRepo) Update(ctx context.Context, agent *models.Agent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.agents[agent.ID]; !ok {
		return fmt.Errorf("agent %s: %w", agent.ID, domain.ErrNotFound)
	}
	clone := *agent
	r.agents[agent.ID] = &clone
	return nil
}

func (r *memAgentRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.agents[id]; !ok {
		return fmt.Errorf("agent %s: %w", id, domain.ErrNotFound)
	}
	delete(r.agents, id)
	return nil
}

// scheduledJob records one Schedule call.
type scheduledJob struct {
	job   string
	args  interface{}
	delay time.Duration
}

// fakeScheduler records scheduled jobs without running anything.
type fakeScheduler struct {
	mu   sync.Mutex
	jobs []scheduledJob
	err  error
}

func (s *fakeScheduler) Schedule(ctx context.Context, job string, args interface{}, delay time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	s.jobs = append(s.jobs, scheduledJob{job: job, args: args, delay: delay})
	return fmt.Sprintf("job-%d", len(s.jobs)), nil
}

func (s *fakeScheduler) scheduled() []scheduledJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]scheduledJob, len(s.jobs))
	copy(out, s.jobs)
	return out
}

// fakeTxManager runs the function directly, no transaction.
type fakeTxManager struct{}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

var (
	_ repositories.PostRepository     = (*memPostRepo)(nil)
	_ repositories.CommentRepository  = (*memCommentRepo)(nil)
	_ repositories.AgentRepository    = (*memAgentRepo)(nil)
	_ services.Scheduler              = (*fakeScheduler)(nil)
	_ repositories.TransactionManager = (*fakeTxManager)(nil)
)
