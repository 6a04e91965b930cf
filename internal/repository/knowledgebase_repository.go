package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/queueshq/queues-service/internal/domain"
)

// KnowledgebaseRepository manages KB categories and articles. Deleting a KB
// category cascades to its articles.
type KnowledgebaseRepository interface {
	CreateCategory(ctx context.Context, category *domain.KBCategory) error
	RenameCategory(ctx context.Context, id int64, name string) error
	DeleteCategory(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]domain.KBCategory, error)

	CreateArticle(ctx context.Context, article *domain.KBArticle) error
	UpdateArticle(ctx context.Context, article *domain.KBArticle) error
	DeleteArticle(ctx context.Context, id int64) error
	GetArticle(ctx context.Context, id int64) (*domain.KBArticle, error)
	ListArticles(ctx context.Context, kbCategoryID *int64) ([]domain.KBArticle, error)
}

type knowledgebaseRepository struct {
	pool *pgxpool.Pool
}

// NewKnowledgebaseRepository builds repository.
func NewKnowledgebaseRepository(pool *pgxpool.Pool) KnowledgebaseRepository {
	return &knowledgebaseRepository{pool: pool}
}

func (r *knowledgebaseRepository) CreateCategory(ctx context.Context, category *domain.KBCategory) error {
	const query = `INSERT INTO kb_categories (name) VALUES ($1) RETURNING id`
	return r.pool.QueryRow(ctx, query, category.Name).Scan(&category.ID)
}

func (r *knowledgebaseRepository) RenameCategory(ctx context.Context, id int64, name string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE kb_categories SET name=$1 WHERE id=$2`, name, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *knowledgebaseRepository) DeleteCategory(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM kb_categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *knowledgebaseRepository) ListCategories(ctx context.Context) ([]domain.KBCategory, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM kb_categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.KBCategory
	for rows.Next() {
		var category domain.KBCategory
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	return result, rows.Err()
}

func (r *knowledgebaseRepository) CreateArticle(ctx context.Context, article *domain.KBArticle) error {
	const query = `
        INSERT INTO kb_articles (kb_category_id, title, content)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		article.KBCategoryID,
		article.Title,
		article.Content,
	).Scan(&article.ID, &article.CreatedAt, &article.UpdatedAt)
}

func (r *knowledgebaseRepository) UpdateArticle(ctx context.Context, article *domain.KBArticle) error {
	const query = `
        UPDATE kb_articles SET kb_category_id=$1, title=$2, content=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		article.KBCategoryID,
		article.Title,
		article.Content,
		article.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *knowledgebaseRepository) DeleteArticle(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM kb_articles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *knowledgebaseRepository) GetArticle(ctx context.Context, id int64) (*domain.KBArticle, error) {
	const query = `
        SELECT id, kb_category_id, title, content, created_at, updated_at
        FROM kb_articles WHERE id=$1`
	var article domain.KBArticle
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&article.ID,
		&article.KBCategoryID,
		&article.Title,
		&article.Content,
		&article.CreatedAt,
		&article.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *knowledgebaseRepository) ListArticles(ctx context.Context, kbCategoryID *int64) ([]domain.KBArticle, error) {
	query := `
        SELECT id, kb_category_id, title, content, created_at, updated_at
        FROM kb_articles`
	args := []any{}
	if kbCategoryID != nil {
		query += ` WHERE kb_category_id=$1`
		args = append(args, *kbCategoryID)
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.KBArticle
	for rows.Next() {
		var article domain.KBArticle
		if err := rows.Scan(
			&article.ID,
			&article.KBCategoryID,
			&article.Title,
			&article.Content,
			&article.CreatedAt,
			&article.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, article)
	}
	return result, rows.Err()
}
