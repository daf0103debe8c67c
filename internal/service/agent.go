package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"inkwell/internal/config"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
	"inkwell/internal/domain/services"
)

// agentService implements the AgentService interface
type agentService struct {
	agentRepo   repositories.AgentRepository
	commentRepo repositories.CommentRepository
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewAgentService creates a new agent service
func NewAgentService(
	agentRepo repositories.AgentRepository,
	commentRepo repositories.CommentRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.AgentService {
	return &agentService{
		agentRepo:   agentRepo,
		commentRepo: commentRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// ListAgents retrieves all agents
func (s *agentService) ListAgents(ctx context.Context) ([]models.Agent, error) {
	return s.agentRepo.List(ctx)
}

// GetAgent retrieves an agent by id
func (s *agentService) GetAgent(ctx context.Context, id string) (*models.Agent, error) {
	return s.agentRepo.GetByID(ctx, id)
}

// CreateAgent creates a new reader persona
func (s *agentService) CreateAgent(ctx context.Context, req *services.CreateAgentRequest) (*models.Agent, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	agent := &models.Agent{
		Name:         strings.TrimSpace(req.Name),
		AvatarURL:    req.AvatarURL,
		Backstory:    req.Backstory,
		WritingStyle: req.WritingStyle,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.agentRepo.Create(ctx, agent); err != nil {
		return nil, err
	}

	s.logger.Info("agent created", "id", agent.ID, "name", agent.Name)

	return agent, nil
}

// UpdateAgent partially updates a persona. Nil fields keep their value.
func (s *agentService) UpdateAgent(ctx context.Context, id string, req *services.UpdateAgentRequest) (*models.Agent, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	agent, err := s.agentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		agent.Name = strings.TrimSpace(*req.Name)
	}
	if req.AvatarURL != nil {
		agent.AvatarURL = *req.AvatarURL
	}
	if req.Backstory != nil {
		agent.Backstory = *req.Backstory
	}
	if req.WritingStyle != nil {
		agent.WritingStyle = req.WritingStyle
	}
	agent.UpdatedAt = time.Now()

	if err := s.agentRepo.Update(ctx, agent); err != nil {
		return nil, err
	}

	s.logger.Info("agent updated", "id", agent.ID, "name", agent.Name)

	return agent, nil
}

// DeleteAgent nulls authorship on the agent's past comments and removes
// the row. Both writes run in one transaction so a half-deleted agent
// never leaves dangling authorship.
func (s *agentService) DeleteAgent(ctx context.Context, id string) error {
	// Verify the agent exists first (provides better error message)
	if _, err := s.agentRepo.GetByID(ctx, id); err != nil {
		return err
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		author := &models.CommentAuthor{Type: models.AuthorTypeAgent, ID: id}
		if err := s.commentRepo.ClearAuthor(txCtx, author); err != nil {
			return err
		}
		return s.agentRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("agent deleted", "id", id)

	return nil
}

func (s *agentService) validateCreateRequest(req *services.CreateAgentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxAgentNameLength),
		),
		validation.Field(&req.AvatarURL,
			validation.Required,
			validation.Length(1, config.MaxAgentAvatarURLLength),
			is.URL,
		),
		validation.Field(&req.Backstory,
			validation.Required,
			validation.Length(1, config.MaxAgentBackstoryLength),
		),
	)
}

func (s *agentService) validateUpdateRequest(req *services.UpdateAgentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.NilOrNotEmpty,
			validation.Length(1, config.MaxAgentNameLength),
		),
		validation.Field(&req.AvatarURL,
			validation.NilOrNotEmpty,
			validation.Length(1, config.MaxAgentAvatarURLLength),
		),
		validation.Field(&req.Backstory,
			validation.NilOrNotEmpty,
			validation.Length(1, config.MaxAgentBackstoryLength),
		),
	)
}
