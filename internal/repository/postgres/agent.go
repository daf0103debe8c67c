package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// PostgresAgentRepository implements the AgentRepository interface. The
// writing_style bundle is stored as JSONB and marshaled through pgx's
// codec support.
type PostgresAgentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewAgentRepository creates a new agent repository
func NewAgentRepository(config *RepositoryConfig) repositories.AgentRepository {
	return &PostgresAgentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new agent
func (r *PostgresAgentRepository) Create(ctx context.Context, agent *models.Agent) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, avatar_url, backstory, writing_style, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, r.tables.Agents)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		agent.Name,
		agent.AvatarURL,
		agent.Backstory,
		agent.WritingStyle,
		agent.CreatedAt,
		agent.UpdatedAt,
	).Scan(&agent.ID, &agent.CreatedAt, &agent.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("agent '%s': %w", agent.Name, domain.ErrConflict)
		}
		return fmt.Errorf("create agent: %w", err)
	}

	return nil
}

// GetByID retrieves an agent by ID
func (r *PostgresAgentRepository) GetByID(ctx context.Context, id string) (*models.Agent, error) {
	query := fmt.Sprintf(`
		SELECT id, name, avatar_url, backstory, writing_style, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Agents)

	var agent models.Agent
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&agent.ID,
		&agent.Name,
		&agent.AvatarURL,
		&agent.Backstory,
		&agent.WritingStyle,
		&agent.CreatedAt,
		&agent.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("agent %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get agent: %w", err)
	}

	return &agent, nil
}

// List retrieves all agents, oldest first
func (r *PostgresAgentRepository) List(ctx context.Context) ([]models.Agent, error) {
	query := fmt.Sprintf(`
		SELECT id, name, avatar_url, backstory, writing_style, created_at, updated_at
		FROM %s
		ORDER BY created_at ASC
	`, r.tables.Agents)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	defer rows.Close()

	var agents []models.Agent
	for rows.Next() {
		var agent models.Agent
		err := rows.Scan(
			&agent.ID,
			&agent.Name,
			&agent.AvatarURL,
			&agent.Backstory,
			&agent.WritingStyle,
			&agent.CreatedAt,
			&agent.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan agent: %w", err)
		}
		agents = append(agents, agent)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate agents: %w", err)
	}

	if agents == nil {
		agents = []models.Agent{}
	}

	return agents, nil
}

// Update updates an agent
func (r *PostgresAgentRepository) Update(ctx context.Context, agent *models.Agent) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, avatar_url = $2, backstory = $3, writing_style = $4, updated_at = $5
		WHERE id = $6
	`, r.tables.Agents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		agent.Name,
		agent.AvatarURL,
		agent.Backstory,
		agent.WritingStyle,
		agent.UpdatedAt,
		agent.ID,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("agent '%s': %w", agent.Name, domain.ErrConflict)
		}
		return fmt.Errorf("update agent: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("agent %s: %w", agent.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes an agent row
func (r *PostgresAgentRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Agents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete agent: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("agent %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
