package services

import (
	"context"

	"inkwell/internal/domain/models"
)

// CommentGenerator turns a persona plus post/thread context into
// generated comment text. One best-effort call per invocation - no
// retry, no caching.
type CommentGenerator interface {
	// GenerateComment produces a root comment on the post in the
	// persona's voice.
	GenerateComment(ctx context.Context, persona *models.Persona, post *models.Post) (string, error)

	// GenerateReply produces the persona's reply to the last comment of
	// the thread, with the root-to-leaf chain as context.
	GenerateReply(ctx context.Context, persona *models.Persona, post *models.Post, thread []models.Comment) (string, error)
}
