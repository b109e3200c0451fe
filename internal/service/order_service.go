package service

import (
	"context"

	"github.com/hugohenrick/loja-colchoes/internal/domain/customer"
	"github.com/hugohenrick/loja-colchoes/internal/domain/order"
	"github.com/hugohenrick/loja-colchoes/internal/domain/payment"
	"github.com/hugohenrick/loja-colchoes/internal/domain/stock"
	"github.com/hugohenrick/loja-colchoes/pkg/logger"
	"github.com/hugohenrick/loja-colchoes/pkg/metrics"
	"github.com/shopspring/decimal"
)

// LineItemInput é a solicitação de um item de pedido
type LineItemInput struct {
	ProductID    int64
	Quantity     int
	UnitPrice    decimal.Decimal
	PaymentTerms *payment.Terms // Opcional
}

// OrderService cria e consulta pedidos
type OrderService struct {
	uow     UnitOfWork
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewOrderService cria uma nova instância de OrderService. metrics pode ser nil.
func NewOrderService(uow UnitOfWork, log logger.Logger, m *metrics.Metrics) *OrderService {
	return &OrderService{
		uow:     uow,
		logger:  log,
		metrics: m,
	}
}

// CreateOrder cria o pedido com todos os itens, planos de pagamento e
// parcelas em uma única transação
func (s *OrderService) CreateOrder(ctx context.Context, customerID int64, inputs []LineItemInput) (*order.Order, error) {
	o, err := order.NewOrder(customerID)
	if err != nil {
		return nil, err
	}

	items, err := buildLineItems(inputs)
	if err != nil {
		return nil, err
	}
	s.warnPlanTotals(items)
	for _, item := range items {
		o.AddItem(item)
	}

	err = s.uow.Do(ctx, func(r Repositories) error {
		if err := checkReferences(ctx, r, customerID, items); err != nil {
			return err
		}
		return r.Orders.Create(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	installments := countInstallments(items)
	s.logger.Info("pedido criado",
		"order_id", o.ID,
		"customer_id", customerID,
		"items", len(items),
		"installments", installments,
	)
	s.metrics.RecordOrder(true, len(items), installments)

	return o, nil
}

// AmendOrder adiciona itens a um pedido existente do cliente. O pedido é
// sempre indicado explicitamente.
func (s *OrderService) AmendOrder(ctx context.Context, customerID, orderID int64, inputs []LineItemInput) (*order.Order, error) {
	if customerID <= 0 {
		return nil, order.ErrInvalidCustomer
	}
	if orderID <= 0 {
		return nil, order.ErrInvalidOrder
	}

	items, err := buildLineItems(inputs)
	if err != nil {
		return nil, err
	}
	s.warnPlanTotals(items)

	var amended *order.Order
	err = s.uow.Do(ctx, func(r Repositories) error {
		if err := checkReferences(ctx, r, customerID, items); err != nil {
			return err
		}

		o, err := r.Orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o.CustomerID != customerID {
			return order.ErrOrderNotFound
		}

		if err := r.Orders.AddItems(ctx, orderID, items); err != nil {
			return err
		}
		for _, item := range items {
			o.AddItem(item)
		}
		amended = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	installments := countInstallments(items)
	s.logger.Info("itens adicionados ao pedido",
		"order_id", orderID,
		"customer_id", customerID,
		"items", len(items),
		"installments", installments,
	)
	s.metrics.RecordOrder(false, len(items), installments)

	return amended, nil
}

// GetOrder busca um pedido com todos os itens e planos
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*order.Order, error) {
	if id <= 0 {
		return nil, order.ErrInvalidOrder
	}

	var o *order.Order
	err := s.uow.Do(ctx, func(r Repositories) error {
		var err error
		o, err = r.Orders.FindByID(ctx, id)
		return err
	})
	return o, err
}

// ListCustomerOrders lista os pedidos de um cliente
func (s *OrderService) ListCustomerOrders(ctx context.Context, customerID int64) ([]*order.Order, error) {
	if customerID <= 0 {
		return nil, order.ErrInvalidCustomer
	}

	var orders []*order.Order
	err := s.uow.Do(ctx, func(r Repositories) error {
		exists, err := r.Customers.ExistsActive(ctx, customerID)
		if err != nil {
			return err
		}
		if !exists {
			return customer.ErrCustomerNotFound
		}

		orders, err = r.Orders.ListByCustomer(ctx, customerID)
		return err
	})
	return orders, err
}

// buildLineItems valida as solicitações e monta os itens antes de qualquer acesso ao banco
func buildLineItems(inputs []LineItemInput) ([]*order.LineItem, error) {
	if len(inputs) == 0 {
		return nil, order.ErrNoItems
	}

	items := make([]*order.LineItem, 0, len(inputs))
	for _, in := range inputs {
		var plan *payment.Plan
		if in.PaymentTerms != nil {
			var err error
			plan, err = payment.NewPlan(*in.PaymentTerms)
			if err != nil {
				return nil, err
			}
		}

		item, err := order.NewLineItem(in.ProductID, in.Quantity, in.UnitPrice, plan)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// checkReferences confirma que o cliente está ativo e que todos os produtos
// existem, com uma única consulta de produtos
func checkReferences(ctx context.Context, r Repositories, customerID int64, items []*order.LineItem) error {
	exists, err := r.Customers.ExistsActive(ctx, customerID)
	if err != nil {
		return err
	}
	if !exists {
		return customer.ErrCustomerNotFound
	}

	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}

	existing, err := r.Stock.FindExistingIDs(ctx, ids)
	if err != nil {
		return err
	}
	return stock.CheckExisting(ids, existing)
}

// warnPlanTotals registra parcelas explícitas cuja soma difere do valor financiado.
// A lista é gravada como veio.
func (s *OrderService) warnPlanTotals(items []*order.LineItem) {
	for _, item := range items {
		plan := item.PaymentPlan
		if plan == nil || plan.InstallmentsTotal().Equal(plan.FinancedAmount()) {
			continue
		}
		s.logger.Warn("soma das parcelas difere do valor financiado",
			"product_id", item.ProductID,
			"financed", plan.FinancedAmount().StringFixed(2),
			"installments_total", plan.InstallmentsTotal().StringFixed(2),
		)
	}
}

func countInstallments(items []*order.LineItem) int {
	n := 0
	for _, item := range items {
		if item.PaymentPlan != nil {
			n += len(item.PaymentPlan.Installments)
		}
	}
	return n
}
