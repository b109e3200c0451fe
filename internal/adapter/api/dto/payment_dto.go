package dto

import (
	"github.com/hugohenrick/loja-colchoes/internal/domain/payment"
)

// UpdateInstallmentStatusRequest representa a mudança de status de uma parcela
type UpdateInstallmentStatusRequest struct {
	Status string `json:"status" binding:"required" example:"paid"`
}

// InstallmentResponse representa uma parcela na resposta
type InstallmentResponse struct {
	PaymentPlanID  int64  `json:"payment_plan_id"`
	SequenceNumber int    `json:"sequence_number"`
	Amount         string `json:"amount" example:"333.33"`
	DueDate        Date   `json:"due_date" swaggertype:"string" example:"2024-02-29"`
	Status         string `json:"status" example:"pending"`
}

// PaymentPlanResponse representa as informações de pagamento com os totais derivados
type PaymentPlanResponse struct {
	ID               int64                 `json:"id"`
	LineItemID       int64                 `json:"line_item_id"`
	TotalAmount      string                `json:"total_amount"`
	DownPayment      string                `json:"down_payment"`
	FinancedAmount   string                `json:"financed_amount"`
	StartDate        Date                  `json:"start_date" swaggertype:"string"`
	InstallmentCount int                   `json:"installment_count"`
	AmountPending    string                `json:"amount_pending"`
	AmountPaid       string                `json:"amount_paid"`
	AmountCancelled  string                `json:"amount_cancelled"`
	AmountRefunded   string                `json:"amount_refunded"`
	Installments     []InstallmentResponse `json:"installments"`
}

// ToInstallmentResponse converte uma parcela do domínio para DTO de resposta
func ToInstallmentResponse(i *payment.Installment) InstallmentResponse {
	return InstallmentResponse{
		PaymentPlanID:  i.PlanID,
		SequenceNumber: i.SequenceNumber,
		Amount:         money(i.Amount),
		DueDate:        NewDate(i.DueDate),
		Status:         string(i.Status),
	}
}

// ToInstallmentListResponse converte uma lista de parcelas
func ToInstallmentListResponse(installments []*payment.Installment) []InstallmentResponse {
	out := make([]InstallmentResponse, 0, len(installments))
	for _, i := range installments {
		out = append(out, ToInstallmentResponse(i))
	}
	return out
}

// ToPaymentPlanResponse converte um plano do domínio para DTO de resposta
func ToPaymentPlanResponse(p *payment.Plan) PaymentPlanResponse {
	installments := make([]InstallmentResponse, 0, len(p.Installments))
	for i := range p.Installments {
		installments = append(installments, ToInstallmentResponse(&p.Installments[i]))
	}

	return PaymentPlanResponse{
		ID:               p.ID,
		LineItemID:       p.LineItemID,
		TotalAmount:      money(p.TotalAmount),
		DownPayment:      money(p.DownPayment),
		FinancedAmount:   money(p.FinancedAmount()),
		StartDate:        NewDate(p.StartDate),
		InstallmentCount: p.InstallmentCount,
		AmountPending:    money(p.AmountPending()),
		AmountPaid:       money(p.AmountPaid()),
		AmountCancelled:  money(p.AmountCancelled()),
		AmountRefunded:   money(p.AmountRefunded()),
		Installments:     installments,
	}
}
