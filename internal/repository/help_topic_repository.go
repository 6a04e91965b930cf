package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/queueshq/queues-service/internal/domain"
)

// HelpTopicRepository manages intake help topics.
type HelpTopicRepository interface {
	Create(ctx context.Context, topic *domain.HelpTopic) error
	Update(ctx context.Context, topic *domain.HelpTopic) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.HelpTopic, error)
}

type helpTopicRepository struct {
	pool *pgxpool.Pool
}

// NewHelpTopicRepository builds repository.
func NewHelpTopicRepository(pool *pgxpool.Pool) HelpTopicRepository {
	return &helpTopicRepository{pool: pool}
}

func (r *helpTopicRepository) Create(ctx context.Context, topic *domain.HelpTopic) error {
	const query = `INSERT INTO help_topics (topic, type) VALUES ($1,$2) RETURNING id`
	return r.pool.QueryRow(ctx, query, topic.Topic, topic.Type).Scan(&topic.ID)
}

func (r *helpTopicRepository) Update(ctx context.Context, topic *domain.HelpTopic) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE help_topics SET topic=$1, type=$2 WHERE id=$3`,
		topic.Topic, topic.Type, topic.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *helpTopicRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM help_topics WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *helpTopicRepository) List(ctx context.Context) ([]domain.HelpTopic, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, topic, type FROM help_topics ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.HelpTopic
	for rows.Next() {
		var topic domain.HelpTopic
		if err := rows.Scan(&topic.ID, &topic.Topic, &topic.Type); err != nil {
			return nil, err
		}
		result = append(result, topic)
	}
	return result, rows.Err()
}
