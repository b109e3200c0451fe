package service

import (
	"context"
	"time"

	"github.com/hugohenrick/loja-colchoes/internal/domain/payment"
	"github.com/hugohenrick/loja-colchoes/pkg/apperror"
	"github.com/hugohenrick/loja-colchoes/pkg/logger"
	"github.com/hugohenrick/loja-colchoes/pkg/metrics"
)

var (
	ErrInvalidPlanID   = apperror.New(apperror.ErrInvalidArgument, "id das informações de pagamento deve ser positivo")
	ErrInvalidSequence = apperror.New(apperror.ErrInvalidArgument, "número da parcela deve ser positivo")
)

// PaymentService consulta planos de pagamento e atualiza o status das parcelas
type PaymentService struct {
	uow     UnitOfWork
	logger  logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewPaymentService cria uma nova instância de PaymentService. metrics pode ser nil.
func NewPaymentService(uow UnitOfWork, log logger.Logger, m *metrics.Metrics) *PaymentService {
	return &PaymentService{
		uow:     uow,
		logger:  log,
		metrics: m,
		now:     time.Now,
	}
}

// UpdateInstallmentStatus sobrescreve o status da parcela identificada por
// (planID, sequence) e retorna a parcela atualizada
func (s *PaymentService) UpdateInstallmentStatus(ctx context.Context, planID int64, sequence int, status string) (*payment.Installment, error) {
	if planID <= 0 {
		return nil, ErrInvalidPlanID
	}
	if sequence <= 0 {
		return nil, ErrInvalidSequence
	}

	to, err := payment.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	var (
		inst *payment.Installment
		from payment.Status
	)
	err = s.uow.Do(ctx, func(r Repositories) error {
		var err error
		inst, err = r.Payments.FindInstallment(ctx, planID, sequence)
		if err != nil {
			return err
		}

		from, err = inst.ChangeStatus(to)
		if err != nil {
			return err
		}
		return r.Payments.UpdateInstallmentStatus(ctx, inst)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("status da parcela alterado",
		"payment_plan_id", planID,
		"sequence_number", sequence,
		"from", string(from),
		"to", string(to),
	)
	s.metrics.RecordStatusTransition(string(from), string(to))

	return inst, nil
}

// GetPlan busca um plano de pagamento com suas parcelas
func (s *PaymentService) GetPlan(ctx context.Context, id int64) (*payment.Plan, error) {
	if id <= 0 {
		return nil, ErrInvalidPlanID
	}

	var plan *payment.Plan
	err := s.uow.Do(ctx, func(r Repositories) error {
		var err error
		plan, err = r.Payments.FindPlanByID(ctx, id)
		return err
	})
	return plan, err
}

// ListOverdue lista as parcelas pendentes vencidas antes da data de
// referência. Sem data, usa o dia atual.
func (s *PaymentService) ListOverdue(ctx context.Context, reference time.Time, limit, offset int) ([]*payment.Installment, error) {
	if reference.IsZero() {
		reference = s.now()
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var installments []*payment.Installment
	err := s.uow.Do(ctx, func(r Repositories) error {
		var err error
		installments, err = r.Payments.ListOverdue(ctx, payment.DateOf(reference), limit, offset)
		return err
	})
	return installments, err
}
