package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/queueshq/queues-service/internal/domain"
)

// UserRepository defines persistence access for requester records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByPlatformUserID(ctx context.Context, platformUserID int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (platform_user_id, organization_id)
        VALUES ($1, $2)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		user.PlatformUserID,
		user.OrganizationID,
	).Scan(&user.ID)
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `SELECT id, platform_user_id, organization_id FROM users WHERE id=$1`
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.PlatformUserID,
		&user.OrganizationID,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByPlatformUserID(ctx context.Context, platformUserID int64) (*domain.User, error) {
	const query = `SELECT id, platform_user_id, organization_id FROM users WHERE platform_user_id=$1`
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, platformUserID).Scan(
		&user.ID,
		&user.PlatformUserID,
		&user.OrganizationID,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT id, platform_user_id, organization_id FROM users ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.PlatformUserID, &user.OrganizationID); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}
