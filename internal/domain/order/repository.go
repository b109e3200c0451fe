package order

import (
	"context"
)

// Repository define a interface para operações de repositório de pedidos.
// O pedido é gravado como agregado: itens, planos de pagamento e parcelas.
type Repository interface {
	// Create grava o pedido com todos os itens e planos, preenchendo os IDs
	Create(ctx context.Context, o *Order) error

	// AddItems grava novos itens em um pedido existente, preenchendo os IDs
	AddItems(ctx context.Context, orderID int64, items []*LineItem) error

	// FindByID busca o pedido com itens, planos e parcelas
	FindByID(ctx context.Context, id int64) (*Order, error)

	// ListByCustomer lista os pedidos de um cliente, do mais recente ao mais antigo
	ListByCustomer(ctx context.Context, customerID int64) ([]*Order, error)
}
