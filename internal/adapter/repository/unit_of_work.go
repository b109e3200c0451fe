package repository

import (
	"context"

	"github.com/hugohenrick/loja-colchoes/internal/infrastructure/database"
	"github.com/hugohenrick/loja-colchoes/internal/service"
	"github.com/jackc/pgx/v5"
)

// PostgresUnitOfWork implementa service.UnitOfWork com uma transação do PostgreSQL
type PostgresUnitOfWork struct {
	db *database.PostgresDB
}

// NewUnitOfWork cria uma nova instância de PostgresUnitOfWork
func NewUnitOfWork(db *database.PostgresDB) *PostgresUnitOfWork {
	return &PostgresUnitOfWork{db: db}
}

// Do implementa service.UnitOfWork.Do
func (u *PostgresUnitOfWork) Do(ctx context.Context, fn func(r service.Repositories) error) error {
	return u.db.Transaction(ctx, func(tx pgx.Tx) error {
		return fn(NewRepositories(tx))
	})
}

// NewRepositories cria os repositórios sobre a mesma conexão ou transação
func NewRepositories(db DBTX) service.Repositories {
	return service.Repositories{
		Customers: NewCustomerRepository(db),
		Stock:     NewStockRepository(db),
		Orders:    NewOrderRepository(db),
		Payments:  NewPaymentRepository(db),
	}
}
