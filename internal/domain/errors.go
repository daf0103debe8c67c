package domain

import (
	"errors"
)

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrValidation       = errors.New("validation failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrAlreadyPublished = errors.New("post already published")

	// ErrGenerationFailed indicates the completion provider returned no
	// usable text. A blank comment is never inserted.
	ErrGenerationFailed = errors.New("comment generation failed")
)
