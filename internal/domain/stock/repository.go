package stock

import (
	"context"
)

// Repository define a interface para operações de repositório de estoque
type Repository interface {
	// Create cria um novo item e preenche seu ID
	Create(ctx context.Context, item *Item) error

	// FindByID busca um item pelo ID
	FindByID(ctx context.Context, id int64) (*Item, error)

	// List lista os itens com paginação, opcionalmente filtrando por status
	List(ctx context.Context, status Status, limit, offset int) ([]*Item, error)

	// Count conta os itens, opcionalmente filtrando por status
	Count(ctx context.Context, status Status) (int, error)

	// Update grava nome, categoria, tamanho, preço, quantidade e status
	Update(ctx context.Context, item *Item) error

	// Delete remove um item que não esteja referenciado por pedidos
	Delete(ctx context.Context, id int64) error

	// FindExistingIDs retorna, dentre os IDs informados, os que existem
	FindExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}
