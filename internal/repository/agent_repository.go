package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/queueshq/queues-service/internal/domain"
)

// AgentRepository handles persistence for agent records and their queue
// assignments.
type AgentRepository interface {
	Create(ctx context.Context, agent *domain.Agent) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Agent, error)
	GetByPlatformUserID(ctx context.Context, platformUserID int64) (*domain.Agent, error)
	List(ctx context.Context) ([]domain.Agent, error)
	ListQueues(ctx context.Context, agentID int64) ([]int64, error)
	ReplaceQueues(ctx context.Context, agentID int64, queueIDs []int64) error
}

type agentRepository struct {
	pool *pgxpool.Pool
}

// NewAgentRepository returns a Postgres-backed implementation.
func NewAgentRepository(pool *pgxpool.Pool) AgentRepository {
	return &agentRepository{pool: pool}
}

func (r *agentRepository) Create(ctx context.Context, agent *domain.Agent) error {
	const query = `
        INSERT INTO agents (platform_user_id)
        VALUES ($1)
        RETURNING id`
	return r.pool.QueryRow(ctx, query, agent.PlatformUserID).Scan(&agent.ID)
}

func (r *agentRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM agents WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *agentRepository) GetByID(ctx context.Context, id int64) (*domain.Agent, error) {
	const query = `SELECT id, platform_user_id FROM agents WHERE id=$1`
	var agent domain.Agent
	if err := r.pool.QueryRow(ctx, query, id).Scan(&agent.ID, &agent.PlatformUserID); err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *agentRepository) GetByPlatformUserID(ctx context.Context, platformUserID int64) (*domain.Agent, error) {
	const query = `SELECT id, platform_user_id FROM agents WHERE platform_user_id=$1`
	var agent domain.Agent
	if err := r.pool.QueryRow(ctx, query, platformUserID).Scan(&agent.ID, &agent.PlatformUserID); err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *agentRepository) List(ctx context.Context) ([]domain.Agent, error) {
	const query = `SELECT id, platform_user_id FROM agents ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Agent
	for rows.Next() {
		var agent domain.Agent
		if err := rows.Scan(&agent.ID, &agent.PlatformUserID); err != nil {
			return nil, err
		}
		result = append(result, agent)
	}
	return result, rows.Err()
}

func (r *agentRepository) ListQueues(ctx context.Context, agentID int64) ([]int64, error) {
	const query = `SELECT queue_id FROM agent_queues WHERE agent_id=$1 ORDER BY queue_id ASC`
	rows, err := r.pool.Query(ctx, query, agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []int64
	for rows.Next() {
		var queueID int64
		if err := rows.Scan(&queueID); err != nil {
			return nil, err
		}
		result = append(result, queueID)
	}
	return result, rows.Err()
}

// ReplaceQueues swaps the full assignment set: existing mappings are removed
// and the supplied set inserted, all within one transaction.
func (r *agentRepository) ReplaceQueues(ctx context.Context, agentID int64, queueIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM agent_queues WHERE agent_id=$1`, agentID); err != nil {
		return err
	}
	for _, queueID := range queueIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO agent_queues (agent_id, queue_id) VALUES ($1,$2)`,
			agentID, queueID,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
