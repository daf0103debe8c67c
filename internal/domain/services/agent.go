package services

import (
	"context"

	"inkwell/internal/domain/models"
)

// CreateAgentRequest creates a new reader persona.
type CreateAgentRequest struct {
	Name         string               `json:"name"`
	AvatarURL    string               `json:"avatar_url"`
	Backstory    string               `json:"backstory"`
	WritingStyle *models.WritingStyle `json:"writing_style"`
}

// UpdateAgentRequest partially updates a persona. Nil fields are left
// untouched.
type UpdateAgentRequest struct {
	Name         *string              `json:"name"`
	AvatarURL    *string              `json:"avatar_url"`
	Backstory    *string              `json:"backstory"`
	WritingStyle *models.WritingStyle `json:"writing_style"`
}

// AgentService defines the admin CRUD surface for reader personas.
// Authorization (agents-admin permission) is checked at the handler
// layer from JWT claims.
type AgentService interface {
	ListAgents(ctx context.Context) ([]models.Agent, error)
	GetAgent(ctx context.Context, id string) (*models.Agent, error)
	CreateAgent(ctx context.Context, req *CreateAgentRequest) (*models.Agent, error)
	UpdateAgent(ctx context.Context, id string, req *UpdateAgentRequest) (*models.Agent, error)

	// DeleteAgent nulls out authorship on the agent's past comments and
	// then removes the agent row, inside one transaction.
	DeleteAgent(ctx context.Context, id string) error
}
