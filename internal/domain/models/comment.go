package models

import "time"

// AuthorType discriminates who wrote a comment. The source data used to
// carry a bare polymorphic author id; it is resolved into this tagged
// form once, at the repository boundary, never re-interpreted per call
// site.
type AuthorType string

const (
	// AuthorTypeUser is an authenticated human author.
	AuthorTypeUser AuthorType = "user"
	// AuthorTypeAgent is an admin-managed agent row.
	AuthorTypeAgent AuthorType = "agent"
	// AuthorTypeBuiltinAgent is a persona from the built-in registry,
	// identified by its registry slug rather than a database id.
	AuthorTypeBuiltinAgent AuthorType = "builtin-agent"
)

// CommentAuthor is the tagged author variant. A nil *CommentAuthor on a
// comment is a tombstone: the agent that wrote it was deleted, but the
// comment (and the thread shape around it) is preserved.
type CommentAuthor struct {
	Type AuthorType `json:"type"`
	ID   string     `json:"id"`
}

// IsAgent reports whether the author is a generated persona of either kind.
func (a *CommentAuthor) IsAgent() bool {
	if a == nil {
		return false
	}
	return a.Type == AuthorTypeAgent || a.Type == AuthorTypeBuiltinAgent
}

// Comment is a single entry in a post's comment tree. A nil
// ParentCommentID marks a root comment; non-nil forms a reply chain that
// always terminates at a root.
type Comment struct {
	ID              string         `json:"id"`
	PostID          string         `json:"post_id"`
	ParentCommentID *string        `json:"parent_comment_id"`
	Author          *CommentAuthor `json:"author"`
	Content         string         `json:"content"`
	Upvotes         int            `json:"upvotes"`
	CreatedAt       time.Time      `json:"created_at"`
}

// CommentWithAuthor decorates a comment with display data for its
// author, resolved against the agents table or the built-in registry.
type CommentWithAuthor struct {
	Comment
	AuthorName      string `json:"author_name,omitempty"`
	AuthorAvatarURL string `json:"author_avatar_url,omitempty"`
}
