package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/queueshq/queues-service/internal/domain"
)

// PriorityRepository manages priority rows. Deleting a priority nulls the
// reference on tickets that carried it.
type PriorityRepository interface {
	Create(ctx context.Context, priority *domain.Priority) error
	Rename(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Priority, error)
}

type priorityRepository struct {
	pool *pgxpool.Pool
}

// NewPriorityRepository builds repository.
func NewPriorityRepository(pool *pgxpool.Pool) PriorityRepository {
	return &priorityRepository{pool: pool}
}

func (r *priorityRepository) Create(ctx context.Context, priority *domain.Priority) error {
	const query = `INSERT INTO priorities (name) VALUES ($1) RETURNING id`
	return r.pool.QueryRow(ctx, query, priority.Name).Scan(&priority.ID)
}

func (r *priorityRepository) Rename(ctx context.Context, id int64, name string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE priorities SET name=$1 WHERE id=$2`, name, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *priorityRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM priorities WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *priorityRepository) List(ctx context.Context) ([]domain.Priority, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM priorities ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Priority
	for rows.Next() {
		var priority domain.Priority
		if err := rows.Scan(&priority.ID, &priority.Name); err != nil {
			return nil, err
		}
		result = append(result, priority)
	}
	return result, rows.Err()
}
