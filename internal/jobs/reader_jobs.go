package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"inkwell/internal/domain/services"
)

// RegisterReaderJobs binds the reader service's job bodies to their job
// names. Called once at startup before the scheduler accepts work.
func RegisterReaderJobs(registry *Registry, reader services.ReaderService) error {
	err := registry.Register(services.JobAgentComment, func(ctx context.Context, raw json.RawMessage) error {
		var args services.AgentCommentArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return fmt.Errorf("unmarshal %s args: %w", services.JobAgentComment, err)
		}
		return reader.CommentOnPost(ctx, &args)
	})
	if err != nil {
		return err
	}

	return registry.Register(services.JobAgentReply, func(ctx context.Context, raw json.RawMessage) error {
		var args services.AgentReplyArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return fmt.Errorf("unmarshal %s args: %w", services.JobAgentReply, err)
		}
		return reader.ReplyToComment(ctx, &args)
	})
}
