package models

import "time"

// Post is a blog post owned by its author. A nil PublishedAt marks a
// draft; publishing sets it exactly once.
type Post struct {
	ID          string     `json:"id"`
	AuthorID    string     `json:"author_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Body        string     `json:"body"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Published reports whether the post has left draft state.
func (p *Post) Published() bool {
	return p.PublishedAt != nil
}

// PostListItem is the list read model: the post plus its reading time.
type PostListItem struct {
	Post
	ReadingTimeMinutes int `json:"reading_time_minutes"`
}

// PostWithComments is the by-slug read model: the post, its reading time
// in minutes, and the full comment set with resolved author display data.
type PostWithComments struct {
	Post
	ReadingTimeMinutes int                 `json:"reading_time_minutes"`
	Comments           []CommentWithAuthor `json:"comments"`
}
