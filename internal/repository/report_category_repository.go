package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/queueshq/queues-service/internal/domain"
)

// ReportCategoryRepository manages the reporting tree. Deleting a parent
// nulls out its children's parent reference.
type ReportCategoryRepository interface {
	Create(ctx context.Context, category *domain.ReportCategory) error
	Update(ctx context.Context, category *domain.ReportCategory) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.ReportCategory, error)
}

type reportCategoryRepository struct {
	pool *pgxpool.Pool
}

// NewReportCategoryRepository builds repository.
func NewReportCategoryRepository(pool *pgxpool.Pool) ReportCategoryRepository {
	return &reportCategoryRepository{pool: pool}
}

func (r *reportCategoryRepository) Create(ctx context.Context, category *domain.ReportCategory) error {
	const query = `
        INSERT INTO report_categories (name, parent_id, required)
        VALUES ($1,$2,$3)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		category.Name,
		category.ParentID,
		category.Required,
	).Scan(&category.ID)
}

func (r *reportCategoryRepository) Update(ctx context.Context, category *domain.ReportCategory) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE report_categories SET name=$1, parent_id=$2, required=$3 WHERE id=$4`,
		category.Name, category.ParentID, category.Required, category.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reportCategoryRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM report_categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reportCategoryRepository) List(ctx context.Context) ([]domain.ReportCategory, error) {
	// roots first, then children grouped under their parent
	const query = `
        SELECT id, name, parent_id, required
        FROM report_categories
        ORDER BY parent_id ASC NULLS FIRST, name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ReportCategory
	for rows.Next() {
		var category domain.ReportCategory
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.ParentID,
			&category.Required,
		); err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	return result, rows.Err()
}
