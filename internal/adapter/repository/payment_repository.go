package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/loja-colchoes/internal/domain/payment"
	"github.com/jackc/pgx/v5"
)

const installmentColumns = `payment_plan_id, sequence_number, amount, due_date, status`

// PaymentRepository implementa a interface payment.Repository
type PaymentRepository struct {
	db DBTX
}

// NewPaymentRepository cria uma nova instância de PaymentRepository
func NewPaymentRepository(db DBTX) payment.Repository {
	return &PaymentRepository{
		db: db,
	}
}

// FindPlanByID implementa payment.Repository.FindPlanByID
func (r *PaymentRepository) FindPlanByID(ctx context.Context, id int64) (*payment.Plan, error) {
	plans, err := findPlans(ctx, r.db, `WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, payment.ErrPlanNotFound
	}
	return plans[0], nil
}

// FindInstallment implementa payment.Repository.FindInstallment. A linha fica
// bloqueada até o fim da transação.
func (r *PaymentRepository) FindInstallment(ctx context.Context, planID int64, sequence int) (*payment.Installment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+installmentColumns+` FROM installments
		WHERE payment_plan_id = $1 AND sequence_number = $2
		FOR UPDATE`,
		planID, sequence)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar parcela: %w", err)
	}

	inst, err := pgx.CollectExactlyOneRow(rows, scanInstallment)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payment.ErrInstallmentNotFound
		}
		return nil, fmt.Errorf("erro ao buscar parcela: %w", err)
	}

	return inst, nil
}

// UpdateInstallmentStatus implementa payment.Repository.UpdateInstallmentStatus
func (r *PaymentRepository) UpdateInstallmentStatus(ctx context.Context, inst *payment.Installment) error {
	result, err := r.db.Exec(ctx,
		`UPDATE installments SET status = $3 WHERE payment_plan_id = $1 AND sequence_number = $2`,
		inst.PlanID, inst.SequenceNumber, inst.Status)
	if err != nil {
		return fmt.Errorf("erro ao atualizar status da parcela: %w", err)
	}

	if result.RowsAffected() == 0 {
		return payment.ErrInstallmentNotFound
	}

	return nil
}

// ListOverdue implementa payment.Repository.ListOverdue
func (r *PaymentRepository) ListOverdue(ctx context.Context, reference time.Time, limit, offset int) ([]*payment.Installment, error) {
	limit, offset = normalizePage(limit, offset)

	rows, err := r.db.Query(ctx,
		`SELECT `+installmentColumns+` FROM installments
		WHERE status = $1 AND due_date < $2
		ORDER BY due_date, payment_plan_id, sequence_number
		LIMIT $3 OFFSET $4`,
		payment.StatusPending, reference, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar parcelas vencidas: %w", err)
	}

	installments, err := pgx.CollectRows(rows, scanInstallment)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar parcelas vencidas: %w", err)
	}

	return installments, nil
}

func scanInstallment(row pgx.CollectableRow) (*payment.Installment, error) {
	var inst payment.Installment
	err := row.Scan(&inst.PlanID, &inst.SequenceNumber, &inst.Amount, &inst.DueDate, &inst.Status)
	return &inst, err
}
