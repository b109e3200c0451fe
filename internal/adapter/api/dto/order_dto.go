package dto

import (
	"time"

	"github.com/hugohenrick/loja-colchoes/internal/domain/order"
	"github.com/hugohenrick/loja-colchoes/internal/domain/payment"
	"github.com/hugohenrick/loja-colchoes/internal/service"
	"github.com/shopspring/decimal"
)

// InstallmentRequest representa uma parcela informada explicitamente
type InstallmentRequest struct {
	SequenceNumber int             `json:"sequence_number"`
	Amount         decimal.Decimal `json:"amount" swaggertype:"string" example:"333.33"`
	DueDate        Date            `json:"due_date" swaggertype:"string" example:"2024-02-10"`
	Status         string          `json:"status" example:"pending"`
}

// PaymentTermsRequest representa as condições de pagamento de um item
type PaymentTermsRequest struct {
	TotalAmount      decimal.Decimal      `json:"total_amount" swaggertype:"string" example:"1000.00"`
	DownPayment      decimal.Decimal      `json:"down_payment" swaggertype:"string" example:"0.00"`
	StartDate        Date                 `json:"start_date" swaggertype:"string" example:"2024-01-31"`
	InstallmentCount int                  `json:"installment_count" example:"3"`
	Installments     []InstallmentRequest `json:"installments,omitempty"`
}

// LineItemRequest representa um item solicitado no pedido
type LineItemRequest struct {
	ProductID    int64                `json:"product_id"`
	Quantity     int                  `json:"quantity"`
	UnitPrice    decimal.Decimal      `json:"unit_price" swaggertype:"string" example:"1000.00"`
	PaymentTerms *PaymentTermsRequest `json:"payment_terms,omitempty"`
}

// CreateOrderRequest representa os dados para criação de um pedido
type CreateOrderRequest struct {
	CustomerID int64             `json:"customer_id"`
	Items      []LineItemRequest `json:"items"`
}

// AmendOrderRequest representa os itens adicionados a um pedido existente
type AmendOrderRequest struct {
	Items []LineItemRequest `json:"items"`
}

// LineItemResponse representa um item de pedido na resposta
type LineItemResponse struct {
	ID          int64                `json:"id"`
	ProductID   int64                `json:"product_id"`
	Quantity    int                  `json:"quantity"`
	UnitPrice   string               `json:"unit_price"`
	Subtotal    string               `json:"subtotal"`
	PaymentPlan *PaymentPlanResponse `json:"payment_plan,omitempty"`
}

// OrderResponse representa a resposta com dados de um pedido
type OrderResponse struct {
	ID         int64              `json:"id"`
	CustomerID int64              `json:"customer_id"`
	Total      string             `json:"total"`
	Items      []LineItemResponse `json:"items"`
	CreatedAt  time.Time          `json:"created_at"`
}

// ToLineItemInputs converte os itens da requisição para a entrada do serviço
func ToLineItemInputs(items []LineItemRequest) []service.LineItemInput {
	inputs := make([]service.LineItemInput, 0, len(items))
	for _, item := range items {
		input := service.LineItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
		if t := item.PaymentTerms; t != nil {
			input.PaymentTerms = t.toTerms()
		}
		inputs = append(inputs, input)
	}
	return inputs
}

func (t *PaymentTermsRequest) toTerms() *payment.Terms {
	terms := &payment.Terms{
		TotalAmount:      t.TotalAmount,
		DownPayment:      t.DownPayment,
		StartDate:        t.StartDate.Time,
		InstallmentCount: t.InstallmentCount,
	}
	if terms.StartDate.IsZero() {
		terms.StartDate = time.Now()
	}

	for _, inst := range t.Installments {
		terms.Installments = append(terms.Installments, payment.ExplicitInstallment{
			SequenceNumber: inst.SequenceNumber,
			Amount:         inst.Amount,
			DueDate:        inst.DueDate.Time,
			Status:         inst.Status,
		})
	}
	return terms
}

// ToOrderResponse converte um pedido do domínio para DTO de resposta
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]LineItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		resp := LineItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: money(item.UnitPrice),
			Subtotal:  money(item.Subtotal()),
		}
		if item.PaymentPlan != nil {
			plan := ToPaymentPlanResponse(item.PaymentPlan)
			resp.PaymentPlan = &plan
		}
		items = append(items, resp)
	}

	return OrderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Total:      money(o.Total()),
		Items:      items,
		CreatedAt:  o.CreatedAt,
	}
}

// ToOrderListResponse converte uma lista de pedidos
func ToOrderListResponse(orders []*order.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToOrderResponse(o))
	}
	return out
}
