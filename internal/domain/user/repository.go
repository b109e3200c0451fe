package user

import (
	"context"
)

// Repository define a interface para operações de repositório de usuários
type Repository interface {
	// Create cria um novo usuário e preenche seu ID
	Create(ctx context.Context, u *User) error

	// FindByID busca um usuário pelo ID
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindByUsername busca um usuário pelo nome de login
	FindByUsername(ctx context.Context, username string) (*User, error)

	// UpdateLastLogin atualiza a data do último login do usuário
	UpdateLastLogin(ctx context.Context, id int64) error
}
