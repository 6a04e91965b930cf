package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/queueshq/queues-service/internal/domain"
)

// StatusRepository manages status rows. Deleting a status cascades to the
// tickets carrying it; see DESIGN.md before relying on that.
type StatusRepository interface {
	Create(ctx context.Context, status *domain.Status) error
	Rename(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Status, error)
}

type statusRepository struct {
	pool *pgxpool.Pool
}

// NewStatusRepository builds repository.
func NewStatusRepository(pool *pgxpool.Pool) StatusRepository {
	return &statusRepository{pool: pool}
}

func (r *statusRepository) Create(ctx context.Context, status *domain.Status) error {
	const query = `INSERT INTO statuses (name) VALUES ($1) RETURNING id`
	return r.pool.QueryRow(ctx, query, status.Name).Scan(&status.ID)
}

func (r *statusRepository) Rename(ctx context.Context, id int64, name string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE statuses SET name=$1 WHERE id=$2`, name, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *statusRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM statuses WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *statusRepository) List(ctx context.Context) ([]domain.Status, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM statuses ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Status
	for rows.Next() {
		var status domain.Status
		if err := rows.Scan(&status.ID, &status.Name); err != nil {
			return nil, err
		}
		result = append(result, status)
	}
	return result, rows.Err()
}
