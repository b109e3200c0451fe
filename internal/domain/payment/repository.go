package payment

import (
	"context"
	"time"
)

// Repository define a interface para leitura e atualização de planos de pagamento.
// A gravação inicial do plano acontece junto com o pedido (order.Repository).
type Repository interface {
	// FindPlanByID busca o plano com suas parcelas ordenadas
	FindPlanByID(ctx context.Context, id int64) (*Plan, error)

	// FindInstallment busca uma parcela pela chave (plano, número), bloqueando-a
	// até o fim da transação
	FindInstallment(ctx context.Context, planID int64, sequence int) (*Installment, error)

	// UpdateInstallmentStatus grava o status da parcela
	UpdateInstallmentStatus(ctx context.Context, inst *Installment) error

	// ListOverdue lista parcelas pendentes vencidas antes da data de referência
	ListOverdue(ctx context.Context, reference time.Time, limit, offset int) ([]*Installment, error)
}
