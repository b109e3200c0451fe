package customer

import (
	"context"
)

// Repository define a interface para operações de repositório de clientes
type Repository interface {
	// Create cria um novo cliente e preenche seu ID
	Create(ctx context.Context, c *Customer) error

	// FindByID busca um cliente pelo ID, inclusive os excluídos logicamente
	FindByID(ctx context.Context, id int64) (*Customer, error)

	// FindByDocument busca um cliente pelo CPF
	FindByDocument(ctx context.Context, document string) (*Customer, error)

	// List lista os clientes ativos com paginação
	List(ctx context.Context, limit, offset int) ([]*Customer, error)

	// Count conta os clientes ativos
	Count(ctx context.Context) (int, error)

	// Update atualiza os dados de um cliente existente
	Update(ctx context.Context, c *Customer) error

	// SoftDelete marca o cliente como excluído
	SoftDelete(ctx context.Context, id int64) error

	// ExistsActive verifica se existe um cliente ativo com o ID
	ExistsActive(ctx context.Context, id int64) (bool, error)
}
