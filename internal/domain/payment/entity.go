package payment

import (
	"fmt"
	"sort"
	"time"

	"github.com/hugohenrick/loja-colchoes/pkg/apperror"
	"github.com/shopspring/decimal"
)

var (
	ErrPlanNotFound        = apperror.New(apperror.ErrNotFound, "informações de pagamento não encontradas")
	ErrInstallmentNotFound = apperror.New(apperror.ErrNotFound, "parcela não encontrada")
	ErrNegativeAmount      = apperror.New(apperror.ErrInvalidArgument, "valor total e sinal não podem ser negativos")
	ErrDownPaymentTooHigh  = apperror.New(apperror.ErrInvalidArgument, "sinal maior que o valor total")
	ErrInvalidSequence     = apperror.New(apperror.ErrInvalidArgument, "número da parcela deve ser positivo")
	ErrDuplicateSequence   = apperror.New(apperror.ErrInvalidArgument, "número de parcela repetido")
	ErrTooManyInstallments = apperror.New(apperror.ErrInvalidArgument, fmt.Sprintf("quantidade de parcelas acima do máximo permitido (%d)", MaxInstallments))
)

// MaxInstallments é o maior número de parcelas aceito em um plano
const MaxInstallments = 360

// Installment representa uma parcela. A identificação pública é sempre o
// par (PlanID, SequenceNumber).
type Installment struct {
	PlanID         int64           `json:"payment_plan_id"`
	SequenceNumber int             `json:"sequence_number"` // Começa em 1
	Amount         decimal.Decimal `json:"amount"`
	DueDate        time.Time       `json:"due_date"`
	Status         Status          `json:"status"`
}

// ChangeStatus sobrescreve o status da parcela e retorna o status anterior
func (i *Installment) ChangeStatus(to Status) (Status, error) {
	from := i.Status
	if err := CheckTransition(from, to); err != nil {
		return from, err
	}
	i.Status = to
	return from, nil
}

// IsOverdue informa se a parcela pendente venceu antes da data de referência
func (i *Installment) IsOverdue(reference time.Time) bool {
	return i.Status == StatusPending && i.DueDate.Before(DateOf(reference))
}

// Plan representa as informações de pagamento de um item de pedido
type Plan struct {
	ID               int64           `json:"id"`
	LineItemID       int64           `json:"line_item_id"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	DownPayment      decimal.Decimal `json:"down_payment"` // Sinal
	StartDate        time.Time       `json:"start_date"`
	InstallmentCount int             `json:"installment_count"` // Quantidade declarada
	Installments     []Installment   `json:"installments"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ExplicitInstallment é uma parcela informada pelo cliente da API na criação
type ExplicitInstallment struct {
	SequenceNumber int
	Amount         decimal.Decimal
	DueDate        time.Time
	Status         string
}

// Terms são as condições de pagamento solicitadas para um item
type Terms struct {
	TotalAmount      decimal.Decimal
	DownPayment      decimal.Decimal
	StartDate        time.Time
	InstallmentCount int
	Installments     []ExplicitInstallment
}

// NewPlan monta as informações de pagamento. Uma lista explícita de parcelas
// é usada como veio, ordenada pelo número; sem ela as parcelas são geradas
// por Schedule. Parcela explícita sem vencimento vence no mesmo dia do mês
// da data de início, deslocada pelo número da parcela.
func NewPlan(terms Terms) (*Plan, error) {
	if terms.TotalAmount.IsNegative() || terms.DownPayment.IsNegative() {
		return nil, ErrNegativeAmount
	}
	if terms.DownPayment.GreaterThan(terms.TotalAmount) {
		return nil, ErrDownPaymentTooHigh
	}
	if terms.InstallmentCount > MaxInstallments || len(terms.Installments) > MaxInstallments {
		return nil, ErrTooManyInstallments
	}

	p := &Plan{
		TotalAmount:      terms.TotalAmount.Round(2),
		DownPayment:      terms.DownPayment.Round(2),
		StartDate:        DateOf(terms.StartDate),
		InstallmentCount: terms.InstallmentCount,
		CreatedAt:        time.Now(),
	}

	if len(terms.Installments) == 0 {
		p.Installments = Schedule(p.FinancedAmount(), terms.InstallmentCount, p.StartDate)
		if p.InstallmentCount <= 0 {
			p.InstallmentCount = 1
		}
		return p, nil
	}

	installments, err := explicitInstallments(terms.Installments, p.StartDate)
	if err != nil {
		return nil, err
	}
	p.Installments = installments

	return p, nil
}

func explicitInstallments(in []ExplicitInstallment, start time.Time) ([]Installment, error) {
	out := make([]Installment, 0, len(in))
	seen := make(map[int]bool, len(in))
	for _, e := range in {
		if e.SequenceNumber <= 0 {
			return nil, ErrInvalidSequence
		}
		if seen[e.SequenceNumber] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateSequence, e.SequenceNumber)
		}
		seen[e.SequenceNumber] = true

		due := DateOf(e.DueDate)
		if e.DueDate.IsZero() {
			due = AddMonths(start, e.SequenceNumber-1)
		}

		out = append(out, Installment{
			SequenceNumber: e.SequenceNumber,
			Amount:         e.Amount.Round(2),
			DueDate:        due,
			Status:         ParseStatusOrPending(e.Status),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].SequenceNumber < out[j].SequenceNumber
	})
	return out, nil
}

// AttachTo liga o plano ao item de pedido antes da gravação do plano
func (p *Plan) AttachTo(lineItemID int64) {
	p.LineItemID = lineItemID
}

// AssignID define o ID do plano depois de persistido
func (p *Plan) AssignID(id int64) {
	p.ID = id
	for i := range p.Installments {
		p.Installments[i].PlanID = id
	}
}

// FinancedAmount é o valor total menos o sinal
func (p *Plan) FinancedAmount() decimal.Decimal {
	return p.TotalAmount.Sub(p.DownPayment)
}

// InstallmentsTotal soma o valor de todas as parcelas
func (p *Plan) InstallmentsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, i := range p.Installments {
		total = total.Add(i.Amount)
	}
	return total
}

// AmountPending soma as parcelas pendentes
func (p *Plan) AmountPending() decimal.Decimal {
	return p.sumByStatus(StatusPending)
}

// AmountPaid soma as parcelas pagas
func (p *Plan) AmountPaid() decimal.Decimal {
	return p.sumByStatus(StatusPaid)
}

// AmountCancelled soma as parcelas canceladas
func (p *Plan) AmountCancelled() decimal.Decimal {
	return p.sumByStatus(StatusCancelled)
}

// AmountRefunded soma as parcelas reembolsadas
func (p *Plan) AmountRefunded() decimal.Decimal {
	return p.sumByStatus(StatusRefunded)
}

func (p *Plan) sumByStatus(status Status) decimal.Decimal {
	total := decimal.Zero
	for _, i := range p.Installments {
		if i.Status == status {
			total = total.Add(i.Amount)
		}
	}
	return total
}

// Installment busca a parcela pelo número
func (p *Plan) Installment(sequence int) (*Installment, bool) {
	for i := range p.Installments {
		if p.Installments[i].SequenceNumber == sequence {
			return &p.Installments[i], true
		}
	}
	return nil, false
}
