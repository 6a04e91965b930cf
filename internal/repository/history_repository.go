package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/queueshq/queues-service/internal/domain"
)

// HistoryRepository stores audit entries.
type HistoryRepository interface {
	Create(ctx context.Context, entry *domain.HistoryEntry) error
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.HistoryEntry, error)
}

type historyRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository builds repository.
func NewHistoryRepository(pool *pgxpool.Pool) HistoryRepository {
	return &historyRepository{pool: pool}
}

func (r *historyRepository) Create(ctx context.Context, entry *domain.HistoryEntry) error {
	const query = `
        INSERT INTO ticket_history (ticket_id, field_changed, old_value, new_value, changed_by)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, changed_at`
	return r.pool.QueryRow(ctx, query,
		entry.TicketID,
		entry.FieldChanged,
		entry.OldValue,
		entry.NewValue,
		entry.ChangedBy,
	).Scan(&entry.ID, &entry.ChangedAt)
}

func (r *historyRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.HistoryEntry, error) {
	// id breaks ties so entries written within one update batch keep their
	// insertion order.
	const query = `
        SELECT id, ticket_id, field_changed, old_value, new_value, changed_by, changed_at
        FROM ticket_history WHERE ticket_id=$1 ORDER BY changed_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.TicketID,
			&entry.FieldChanged,
			&entry.OldValue,
			&entry.NewValue,
			&entry.ChangedBy,
			&entry.ChangedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
