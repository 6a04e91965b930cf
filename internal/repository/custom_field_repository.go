package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/queueshq/queues-service/internal/domain"
)

// CustomFieldRepository manages intake-form field definitions. Rows vanish
// with their owning category or help topic via the schema cascades.
type CustomFieldRepository interface {
	Create(ctx context.Context, field *domain.CustomField) error
	// Update changes label and type only; associations are fixed at
	// creation.
	Update(ctx context.Context, id int64, fieldLabel, fieldType string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.CustomField, error)
}

type customFieldRepository struct {
	pool *pgxpool.Pool
}

// NewCustomFieldRepository builds repository.
func NewCustomFieldRepository(pool *pgxpool.Pool) CustomFieldRepository {
	return &customFieldRepository{pool: pool}
}

func (r *customFieldRepository) Create(ctx context.Context, field *domain.CustomField) error {
	const query = `
        INSERT INTO custom_fields (field_label, field_type, category_id, help_topic_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		field.FieldLabel,
		field.FieldType,
		field.CategoryID,
		field.HelpTopicID,
	).Scan(&field.ID)
}

func (r *customFieldRepository) Update(ctx context.Context, id int64, fieldLabel, fieldType string) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE custom_fields SET field_label=$1, field_type=$2 WHERE id=$3`,
		fieldLabel, fieldType, id,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *customFieldRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM custom_fields WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *customFieldRepository) List(ctx context.Context) ([]domain.CustomField, error) {
	// ordered by the associated category or topic name so the listing
	// groups fields by what they belong to
	const query = `
        SELECT f.id, f.field_label, f.field_type, f.category_id, f.help_topic_id
        FROM custom_fields f
        LEFT JOIN categories c ON f.category_id = c.id
        LEFT JOIN help_topics h ON f.help_topic_id = h.id
        ORDER BY COALESCE(c.name, h.topic) ASC, f.id ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CustomField
	for rows.Next() {
		var field domain.CustomField
		if err := rows.Scan(
			&field.ID,
			&field.FieldLabel,
			&field.FieldType,
			&field.CategoryID,
			&field.HelpTopicID,
		); err != nil {
			return nil, err
		}
		result = append(result, field)
	}
	return result, rows.Err()
}
