package service

import (
	"context"

	"github.com/hugohenrick/loja-colchoes/internal/domain/customer"
	"github.com/hugohenrick/loja-colchoes/internal/domain/order"
	"github.com/hugohenrick/loja-colchoes/internal/domain/payment"
	"github.com/hugohenrick/loja-colchoes/internal/domain/stock"
)

// Repositories agrupa os repositórios ligados a uma mesma transação
type Repositories struct {
	Customers customer.Repository
	Stock     stock.Repository
	Orders    order.Repository
	Payments  payment.Repository
}

// UnitOfWork executa fn dentro de uma única transação. Se fn retornar erro,
// ou o contexto for cancelado, nada do que foi gravado é confirmado.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(r Repositories) error) error
}
