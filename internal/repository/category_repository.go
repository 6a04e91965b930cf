package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/queueshq/queues-service/internal/domain"
)

// CategoryRepository manages ticket queues. Deleting a category cascades to
// agent assignments, canned responses, custom fields and tickets via the
// schema's foreign keys.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Rename(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository builds repository.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	const query = `INSERT INTO categories (name) VALUES ($1) RETURNING id`
	return r.pool.QueryRow(ctx, query, category.Name).Scan(&category.ID)
}

func (r *categoryRepository) Rename(ctx context.Context, id int64, name string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE categories SET name=$1 WHERE id=$2`, name, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	var category domain.Category
	if err := r.pool.QueryRow(ctx, `SELECT id, name FROM categories WHERE id=$1`, id).
		Scan(&category.ID, &category.Name); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	return result, rows.Err()
}
