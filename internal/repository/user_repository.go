package repository

import (
	"context"
	"time"

	"ticketbari-api/internal/model"
	apperrors "ticketbari-api/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	UpdateRole(ctx context.Context, email string, role model.Role) (*model.User, error)

	// Transaction methods
	SetFraud(ctx context.Context, tx pgx.Tx, email string) error
}

type UserRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &UserRepositoryImpl{
		pool: pool,
	}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (email, name, photo_url, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING
		RETURNING id, email, name, photo_url, role, is_fraud, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		user.Email, user.Name, user.PhotoURL, model.RoleUser,
	).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PhotoURL,
		&user.Role,
		&user.IsFraud,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		// ON CONFLICT DO NOTHING returns no row when the email is taken.
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserAlreadyExists
		}
		return nil, err
	}

	return user, nil
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, email, name, photo_url, role, is_fraud, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PhotoURL,
		&user.Role,
		&user.IsFraud,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) List(ctx context.Context) ([]*model.User, error) {
	query := `
		SELECT id, email, name, photo_url, role, is_fraud, created_at, updated_at
		FROM users
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*model.User, 0)
	for rows.Next() {
		var user model.User
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Name,
			&user.PhotoURL,
			&user.Role,
			&user.IsFraud,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *UserRepositoryImpl) UpdateRole(ctx context.Context, email string, role model.Role) (*model.User, error) {
	query := `
		UPDATE users
		SET role = $1, updated_at = $2
		WHERE email = $3
		RETURNING id, email, name, photo_url, role, is_fraud, created_at, updated_at
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, role, time.Now().UTC(), email).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PhotoURL,
		&user.Role,
		&user.IsFraud,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *UserRepositoryImpl) SetFraud(ctx context.Context, tx pgx.Tx, email string) error {
	query := `
		UPDATE users
		SET is_fraud = TRUE, updated_at = $1
		WHERE email = $2
	`

	result, err := tx.Exec(ctx, query, time.Now().UTC(), email)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}
