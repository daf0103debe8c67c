package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/services"
	"inkwell/internal/personas"
)

func testPersonaRegistry() *personas.Registry {
	return personas.NewRegistryFromEntries(map[string]*models.Persona{
		"test-reader": {
			Ref:       "test-reader",
			Type:      models.AuthorTypeBuiltinAgent,
			Name:      "Test Reader",
			AvatarURL: "https://example.com/avatar.svg",
			Backstory: "Reads everything.",
			WritingStyle: &models.WritingStyle{
				RoleplayInstruction: "You are a test reader.",
				Voice:               "Flat.",
			},
		},
	})
}

type postServiceFixture struct {
	posts     *memPostRepo
	comments  *memCommentRepo
	agents    *memAgentRepo
	scheduler *fakeScheduler
	cfg       *config.Config
	svc       services.PostService
}

func newPostServiceFixture(cfg *config.Config) *postServiceFixture {
	f := &postServiceFixture{
		posts:     newMemPostRepo(),
		comments:  newMemCommentRepo(),
		agents:    newMemAgentRepo(),
		scheduler: &fakeScheduler{},
		cfg:       cfg,
	}
	f.svc = NewPostService(f.posts, f.comments, f.agents, testPersonaRegistry(), f.scheduler, f.cfg, testLogger())
	return f
}

func debugConfig() *config.Config {
	return &config.Config{
		Debug:           true,
		CommentDelayMin: 5 * time.Second,
		CommentDelayMax: 10 * time.Minute,
	}
}

func TestCreatePost_Draft(t *testing.T) {
	f := newPostServiceFixture(debugConfig())
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, &services.CreatePostRequest{
		AuthorID: "user-1",
		Title:    "First Draft",
		Slug:     "first-draft",
		Body:     "Some body text.",
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if post.ID == "" {
		t.Error("post ID not assigned")
	}
	if post.Published() {
		t.Error("draft post reported as published")
	}

	// Drafts schedule no reader comments
	if got := len(f.scheduler.scheduled()); got != 0 {
		t.Errorf("draft scheduled %d jobs, want 0", got)
	}
}

func TestCreatePost_Validation(t *testing.T) {
	f := newPostServiceFixture(debugConfig())
	ctx := context.Background()

	tests := []struct {
		name string
		req  *services.CreatePostRequest
	}{
		{"missing title", &services.CreatePostRequest{AuthorID: "u", Slug: "slug", Body: "b"}},
		{"missing body", &services.CreatePostRequest{AuthorID: "u", Title: "t", Slug: "slug"}},
		{"uppercase slug", &services.CreatePostRequest{AuthorID: "u", Title: "t", Slug: "Bad-Slug", Body: "b"}},
		{"slug with spaces", &services.CreatePostRequest{AuthorID: "u", Title: "t", Slug: "bad slug", Body: "b"}},
		{"trailing hyphen", &services.CreatePostRequest{AuthorID: "u", Title: "t", Slug: "bad-", Body: "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreatePost(ctx, tt.req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("got %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreatePost_DuplicateSlug(t *testing.T) {
	f := newPostServiceFixture(debugConfig())
	ctx := context.Background()

	req := &services.CreatePostRequest{AuthorID: "user-1", Title: "T", Slug: "dup", Body: "b"}
	if _, err := f.svc.CreatePost(ctx, req); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := f.svc.CreatePost(ctx, req)
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("got %v, want ErrConflict", err)
	}

	// Same slug for a different author is fine
	other := &services.CreatePostRequest{AuthorID: "user-2", Title: "T", Slug: "dup", Body: "b"}
	if _, err := f.svc.CreatePost(ctx, other); err != nil {
		t.Errorf("same slug, different author failed: %v", err)
	}
}

func TestCreatePost_ImmediatePublishSchedules(t *testing.T) {
	f := newPostServiceFixture(debugConfig())
	ctx := context.Background()

	now := time.Now()
	post, err := f.svc.CreatePost(ctx, &services.CreatePostRequest{
		AuthorID:    "user-1",
		Title:       "Live",
		Slug:        "live",
		Body:        "b",
		PublishedAt: &now,
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if !post.Published() {
		t.Fatal("post not published")
	}

	jobs := f.scheduler.scheduled()
	if len(jobs) != 1 {
		t.Fatalf("scheduled %d jobs, want 1 (one built-in persona)", len(jobs))
	}
	if jobs[0].job != services.JobAgentComment {
		t.Errorf("scheduled job %q, want %q", jobs[0].job, services.JobAgentComment)
	}
}

func TestPublishPost(t *testing.T) {
	f := newPostServiceFixture(debugConfig())
	ctx := context.Background()

	// Two database agents plus the one built-in persona
	for _, name := range []string{"Agent A", "Agent B"} {
		agent := &models.Agent{Name: name, WritingStyle: &models.WritingStyle{}}
		if err := f.agents.Create(ctx, agent); err != nil {
			t.Fatalf("seed agent: %v", err)
		}
	}

	post, err := f.svc.CreatePost(ctx, &services.CreatePostRequest{
		AuthorID: "user-1", Title: "T", Slug: "t", Body: "b",
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	published, err := f.svc.PublishPost(ctx, post.ID, "user-1")
	if err != nil {
		t.Fatalf("PublishPost failed: %v", err)
	}
	if !published.Published() {
		t.Fatal("post not marked published")
	}

	jobs := f.scheduler.scheduled()
	if len(jobs) != 3 {
		t.Fatalf("scheduled %d jobs, want 3 (2 agents + 1 built-in)", len(jobs))
	}
	for _, job := range jobs {
		if job.job != services.JobAgentComment {
			t.Errorf("scheduled job %q, want %q", job.job, services.JobAgentComment)
		}
		// Debug mode collapses the delay to zero
		if job.delay != 0 {
			t.Errorf("debug delay = %v, want 0", job.delay)
		}
		args, ok := job.args.(services.AgentCommentArgs)
		if !ok {
			t.Fatalf("args type %T, want AgentCommentArgs", job.args)
		}
		if args.PostID != post.ID {
			t.Errorf("args.PostID = %q, want %q", args.PostID, post.ID)
		}
	}
}

func TestPublishPost_DelayWindow(t *testing.T) {
	cfg := &config.Config{
		Debug:           false,
		CommentDelayMin: 5 * time.Second,
		CommentDelayMax: 10 * time.Minute,
	}
	f := newPostServiceFixture(cfg)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, &services.CreatePostRequest{
		AuthorID: "user-1", Title: "T", Slug: "t", Body: "b",
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if _, err := f.svc.PublishPost(ctx, post.ID, "user-1"); err != nil {
		t.Fatalf("PublishPost failed: %v", err)
	}

	for _, job := range f.scheduler.scheduled() {
		if job.delay < cfg.CommentDelayMin || job.delay > cfg.CommentDelayMax {
			t.Errorf("delay %v outside [%v, %v]", job.delay, cfg.CommentDelayMin, cfg.CommentDelayMax)
		}
	}
}

func TestPublishPost_Twice(t *testing.T) {
	f := newPostServiceFixture(debugConfig())
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, &services.CreatePostRequest{
		AuthorID: "user-1", Title: "T", Slug: "t", Body: "b",
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	first, err := f.svc.PublishPost(ctx, post.ID, "user-1")
	if err != nil {
		t.Fatalf("first publish failed: %v", err)
	}
	firstAt := *first.PublishedAt

	_, err = f.svc.PublishPost(ctx, post.ID, "user-1")
	if !errors.Is(err, domain.ErrAlreadyPublished) {
		t.Fatalf("second publish got %v, want ErrAlreadyPublished", err)
	}

	// Original timestamp untouched
	stored, err := f.posts.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !stored.PublishedAt.Equal(firstAt) {
		t.Errorf("published_at changed: %v != %v", stored.PublishedAt, firstAt)
	}

	// No second round of comment jobs
	if got := len(f.scheduler.scheduled()); got != 1 {
		t.Errorf("scheduled %d jobs, want 1", got)
	}
}

func TestPublishPost_Ownership(t *testing.T) {
	f := newPostServiceFixture(debugConfig())
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, &services.CreatePostRequest{
		AuthorID: "user-1", Title: "T", Slug: "t", Body: "b",
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	_, err = f.svc.PublishPost(ctx, post.ID, "intruder")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("got %v, want ErrForbidden", err)
	}
}

func TestUpdatePost_DraftOnly(t *testing.T) {
	f := newPostServiceFixture(debugConfig())
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, &services.CreatePostRequest{
		AuthorID: "user-1", Title: "T", Slug: "t", Body: "b",
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	updated, err := f.svc.UpdatePost(ctx, post.ID, "user-1", &services.UpdatePostRequest{
		Title: "New Title", Body: "new body",
	})
	if err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}
	if updated.Title != "New Title" || updated.Body != "new body" {
		t.Errorf("update not applied: %+v", updated)
	}

	if _, err := f.svc.PublishPost(ctx, post.ID, "user-1"); err != nil {
		t.Fatalf("PublishPost failed: %v", err)
	}

	_, err = f.svc.UpdatePost(ctx, post.ID, "user-1", &services.UpdatePostRequest{
		Title: "After Publish", Body: "nope",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("editing published post got %v, want ErrValidation", err)
	}
}

func TestDeletePost(t *testing.T) {
	f := newPostServiceFixture(debugConfig())
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, &services.CreatePostRequest{
		AuthorID: "user-1", Title: "T", Slug: "t", Body: "b",
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	if err := f.svc.DeletePost(ctx, post.ID, "other-user"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("got %v, want ErrForbidden", err)
	}

	if err := f.svc.DeletePost(ctx, post.ID, "user-1"); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	if _, err := f.posts.GetByID(ctx, post.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("post still present after delete: %v", err)
	}
}

func TestListPosts_ReadingTime(t *testing.T) {
	f := newPostServiceFixture(debugConfig())
	ctx := context.Background()

	longBody := strings.Repeat("word ", 450)
	if _, err := f.svc.CreatePost(ctx, &services.CreatePostRequest{
		AuthorID: "user-1", Title: "Long", Slug: "long", Body: longBody,
	}); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	items, err := f.svc.ListPosts(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d posts, want 1", len(items))
	}
	if items[0].ReadingTimeMinutes != 3 {
		t.Errorf("reading time = %d, want 3", items[0].ReadingTimeMinutes)
	}

	// Other callers see nothing
	other, err := f.svc.ListPosts(ctx, "user-2")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("got %d posts for other user, want 0", len(other))
	}
}

func TestGetPostBySlug_CommentsAndReadingTime(t *testing.T) {
	f := newPostServiceFixture(debugConfig())
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, &services.CreatePostRequest{
		AuthorID: "user-1", Title: "T", Slug: "with-comments", Body: "one two three four five",
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	// One built-in comment, one tombstoned comment
	builtinComment := &models.Comment{
		PostID:  post.ID,
		Author:  &models.CommentAuthor{Type: models.AuthorTypeBuiltinAgent, ID: "test-reader"},
		Content: "interesting",
	}
	if err := f.comments.Create(ctx, builtinComment); err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	tombstone := &models.Comment{PostID: post.ID, Author: nil, Content: "orphaned"}
	if err := f.comments.Create(ctx, tombstone); err != nil {
		t.Fatalf("seed comment: %v", err)
	}

	got, err := f.svc.GetPostBySlug(ctx, "with-comments", "user-1")
	if err != nil {
		t.Fatalf("GetPostBySlug failed: %v", err)
	}

	if got.ReadingTimeMinutes != 1 {
		t.Errorf("reading time = %d, want 1", got.ReadingTimeMinutes)
	}
	if len(got.Comments) != 2 {
		t.Fatalf("got %d comments, want 2", len(got.Comments))
	}
	if got.Comments[0].AuthorName != "Test Reader" {
		t.Errorf("builtin author name = %q, want %q", got.Comments[0].AuthorName, "Test Reader")
	}
	if got.Comments[1].AuthorName != "" {
		t.Errorf("tombstoned comment has author name %q", got.Comments[1].AuthorName)
	}

	// Another user has no post under that slug
	if _, err := f.svc.GetPostBySlug(ctx, "with-comments", "user-2"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
