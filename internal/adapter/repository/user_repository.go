package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hugohenrick/loja-colchoes/internal/domain/user"
	"github.com/hugohenrick/loja-colchoes/pkg/apperror"
	"github.com/jackc/pgx/v5"
)

// ErrUserDuplicateUsername indica que o nome de login já está em uso
var ErrUserDuplicateUsername = apperror.New(apperror.ErrConflict, "nome de usuário já existe")

// UserRepository implementa a interface user.Repository usando PostgreSQL
type UserRepository struct {
	db DBTX
}

// NewUserRepository cria uma nova instância de UserRepository
func NewUserRepository(db DBTX) user.Repository {
	return &UserRepository{
		db: db,
	}
}

// Create implementa user.Repository.Create
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (username, name, password, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		u.Username, u.Name, u.Password, u.Role, u.Status, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrUserDuplicateUsername
		}
		return fmt.Errorf("erro ao criar usuário: %w", err)
	}

	return nil
}

// FindByID implementa user.Repository.FindByID
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

// FindByUsername implementa user.Repository.FindByUsername
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.findOne(ctx, `WHERE username = $1`, strings.ToLower(strings.TrimSpace(username)))
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any) (*user.User, error) {
	var u user.User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, name, password, role, status, last_login_at, created_at, updated_at
		FROM users `+where,
		arg).Scan(
		&u.ID, &u.Username, &u.Name, &u.Password, &u.Role, &u.Status,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("erro ao buscar usuário: %w", err)
	}

	return &u, nil
}

// UpdateLastLogin implementa user.Repository.UpdateLastLogin
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	now := time.Now()
	result, err := r.db.Exec(ctx,
		`UPDATE users SET last_login_at = $2, updated_at = $2 WHERE id = $1`,
		id, now)

	if err != nil {
		return fmt.Errorf("erro ao atualizar último login: %w", err)
	}

	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}
