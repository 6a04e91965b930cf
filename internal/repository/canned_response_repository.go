package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/queueshq/queues-service/internal/domain"
)

// CannedResponseRepository manages reusable reply snippets.
type CannedResponseRepository interface {
	Create(ctx context.Context, canned *domain.CannedResponse) error
	Update(ctx context.Context, canned *domain.CannedResponse) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.CannedResponse, error)
}

type cannedResponseRepository struct {
	pool *pgxpool.Pool
}

// NewCannedResponseRepository builds repository.
func NewCannedResponseRepository(pool *pgxpool.Pool) CannedResponseRepository {
	return &cannedResponseRepository{pool: pool}
}

func (r *cannedResponseRepository) Create(ctx context.Context, canned *domain.CannedResponse) error {
	const query = `
        INSERT INTO canned_responses (name, category_id, response)
        VALUES ($1,$2,$3)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		canned.Name,
		canned.CategoryID,
		canned.Response,
	).Scan(&canned.ID)
}

func (r *cannedResponseRepository) Update(ctx context.Context, canned *domain.CannedResponse) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE canned_responses SET name=$1, category_id=$2, response=$3 WHERE id=$4`,
		canned.Name, canned.CategoryID, canned.Response, canned.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *cannedResponseRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM canned_responses WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *cannedResponseRepository) List(ctx context.Context) ([]domain.CannedResponse, error) {
	const query = `SELECT id, name, category_id, response FROM canned_responses ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CannedResponse
	for rows.Next() {
		var canned domain.CannedResponse
		if err := rows.Scan(&canned.ID, &canned.Name, &canned.CategoryID, &canned.Response); err != nil {
			return nil, err
		}
		result = append(result, canned)
	}
	return result, rows.Err()
}
