package repositories

import (
	"context"

	"inkwell/internal/domain/models"
)

// AgentRepository persists admin-managed reader personas.
type AgentRepository interface {
	// Create inserts a new agent and fills in generated fields.
	Create(ctx context.Context, agent *models.Agent) error

	// GetByID retrieves an agent by id.
	GetByID(ctx context.Context, id string) (*models.Agent, error)

	// List retrieves all agents, oldest first.
	List(ctx context.Context) ([]models.Agent, error)

	// Update persists changes to an agent.
	Update(ctx context.Context, agent *models.Agent) error

	// Delete removes an agent row. Callers null out the agent's comment
	// authorship first.
	Delete(ctx context.Context, id string) error
}
