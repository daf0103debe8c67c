package services

import (
	"context"
	"time"
)

// Job names routed through the scheduler.
const (
	JobAgentComment = "agents.comment"
	JobAgentReply   = "comments.reply_as_agent"
)

// AgentCommentArgs is the payload for JobAgentComment.
type AgentCommentArgs struct {
	PostID string `json:"post_id"`
	// AgentRef is a database agent id or a builtin persona slug,
	// disambiguated by AgentType.
	AgentRef  string `json:"agent_ref"`
	AgentType string `json:"agent_type"`
}

// AgentReplyArgs is the payload for JobAgentReply.
type AgentReplyArgs struct {
	UserCommentID string `json:"user_comment_id"`
	AgentRef      string `json:"agent_ref"`
	AgentType     string `json:"agent_type"`
}

// Scheduler runs a named job with the given arguments after an optional
// delay. Fire-and-forget: once scheduled a job runs to completion or
// fails, with no cancellation and no retry. The delay is a minimum
// bound, not a deadline.
type Scheduler interface {
	Schedule(ctx context.Context, job string, args interface{}, delay time.Duration) (jobID string, err error)
}
