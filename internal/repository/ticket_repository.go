package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/queueshq/queues-service/internal/domain"
)

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	// UpdateFields applies the supplied column/value pairs plus updated_at
	// and returns the number of affected rows.
	UpdateFields(ctx context.Context, id int64, updates map[string]any) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	List(ctx context.Context) ([]domain.Ticket, error)
	// CountActiveByCategory counts non-closed tickets per category,
	// restricted to the given categories. Categories without active tickets
	// are absent from the result.
	CountActiveByCategory(ctx context.Context, categoryIDs []int64) (map[int64]int64, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (user_id, agent_id, priority_id, title, content, category_id, status_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.UserID,
		ticket.AgentID,
		ticket.PriorityID,
		ticket.Title,
		ticket.Content,
		ticket.CategoryID,
		ticket.StatusID,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) UpdateFields(ctx context.Context, id int64, updates map[string]any) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}

	columns := make([]string, 0, len(updates))
	for column := range updates {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	sets := make([]string, 0, len(columns)+1)
	args := make([]any, 0, len(columns)+1)
	for _, column := range columns {
		args = append(args, updates[column])
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}
	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE tickets SET %s WHERE id=$%d`,
		strings.Join(sets, ", "), len(args))

	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	const query = `
        SELECT id, user_id, agent_id, priority_id, title, content, category_id, status_id, created_at, updated_at
        FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.UserID,
		&ticket.AgentID,
		&ticket.PriorityID,
		&ticket.Title,
		&ticket.Content,
		&ticket.CategoryID,
		&ticket.StatusID,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	const query = `
        SELECT id, user_id, agent_id, priority_id, title, content, category_id, status_id, created_at, updated_at
        FROM tickets ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) CountActiveByCategory(ctx context.Context, categoryIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64)
	if len(categoryIDs) == 0 {
		return counts, nil
	}

	placeholders := make([]string, len(categoryIDs))
	args := make([]any, 0, len(categoryIDs)+1)
	args = append(args, domain.StatusClosed)
	for i, categoryID := range categoryIDs {
		args = append(args, categoryID)
		placeholders[i] = fmt.Sprintf("$%d", len(args))
	}

	query := fmt.Sprintf(`
        SELECT category_id, COUNT(*) AS active_count
        FROM tickets
        WHERE status_id != $1 AND category_id IN (%s)
        GROUP BY category_id`, strings.Join(placeholders, ","))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var categoryID, count int64
		if err := rows.Scan(&categoryID, &count); err != nil {
			return nil, err
		}
		counts[categoryID] = count
	}
	return counts, rows.Err()
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.UserID,
			&ticket.AgentID,
			&ticket.PriorityID,
			&ticket.Title,
			&ticket.Content,
			&ticket.CategoryID,
			&ticket.StatusID,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
