package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
)

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, user domain.CreateUserDTO, passwordHash string) (int64, error) {
	var id int64

	query := `
		INSERT INTO users (full_name, email, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, true, $5, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, user.FullName, user.Email, passwordHash, user.Role, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	return id, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getByField(ctx, "id", id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getByField(ctx, "email", email)
}

func (r *UserRepo) getByField(ctx context.Context, field string, value interface{}) (*domain.User, error) {
	query := fmt.Sprintf(`
		SELECT id, full_name, email, password_hash, role, is_active, created_at, updated_at
		FROM users
		WHERE %s = $1
	`, field)

	var user domain.User
	err := r.db.QueryRow(ctx, query, value).Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}

	return &user, nil
}

func (r *UserRepo) Update(ctx context.Context, id int64, user domain.UpdateUserDTO) error {
	query := `
		UPDATE users
		SET full_name = COALESCE($1, full_name),
		    email = COALESCE($2, email),
		    updated_at = $3
		WHERE id = $4
	`

	_, err := r.db.Exec(ctx, query, user.FullName, user.Email, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления пользователя: %w", err)
	}

	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET is_active = false, updated_at = $1 WHERE id = $2`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка деактивации пользователя: %w", err)
	}

	return nil
}

func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	query := `
		SELECT id, full_name, email, password_hash, role, is_active, created_at, updated_at
		FROM users
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка пользователей: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		err := rows.Scan(
			&user.ID,
			&user.FullName,
			&user.Email,
			&user.PasswordHash,
			&user.Role,
			&user.IsActive,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки пользователя: %w", err)
		}
		users = append(users, user)
	}

	return users, nil
}
