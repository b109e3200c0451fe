package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/loja-colchoes/internal/domain/order"
	"github.com/hugohenrick/loja-colchoes/internal/domain/payment"
	"github.com/jackc/pgx/v5"
)

// OrderRepository implementa a interface order.Repository. O pedido é
// gravado como agregado: pedido, itens, planos e parcelas.
type OrderRepository struct {
	db DBTX
}

// NewOrderRepository cria uma nova instância de OrderRepository
func NewOrderRepository(db DBTX) order.Repository {
	return &OrderRepository{
		db: db,
	}
}

// Create implementa order.Repository.Create
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO orders (customer_id, created_at) VALUES ($1, $2) RETURNING id`,
		o.CustomerID, o.CreatedAt).Scan(&id)
	if err != nil {
		return fmt.Errorf("erro ao criar pedido: %w", err)
	}
	o.AssignID(id)

	return r.insertItems(ctx, id, o.Items)
}

// AddItems implementa order.Repository.AddItems
func (r *OrderRepository) AddItems(ctx context.Context, orderID int64, items []*order.LineItem) error {
	for _, item := range items {
		item.OrderID = orderID
	}
	return r.insertItems(ctx, orderID, items)
}

// insertItems grava cada item e, quando houver, seu plano e parcelas. O plano
// recebe o ID do item antes de ser gravado.
func (r *OrderRepository) insertItems(ctx context.Context, orderID int64, items []*order.LineItem) error {
	for _, item := range items {
		var id int64
		err := r.db.QueryRow(ctx,
			`INSERT INTO line_items (order_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			orderID, item.ProductID, item.Quantity, item.UnitPrice).Scan(&id)
		if err != nil {
			return fmt.Errorf("erro ao criar item do pedido: %w", err)
		}
		item.AssignID(id)

		if item.PaymentPlan != nil {
			if err := r.insertPlan(ctx, item.PaymentPlan); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *OrderRepository) insertPlan(ctx context.Context, p *payment.Plan) error {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO payment_plans (line_item_id, total_amount, down_payment, start_date, installment_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		p.LineItemID, p.TotalAmount, p.DownPayment, p.StartDate, p.InstallmentCount, p.CreatedAt).Scan(&id)
	if err != nil {
		return fmt.Errorf("erro ao criar informações de pagamento: %w", err)
	}
	p.AssignID(id)

	batch := &pgx.Batch{}
	for _, inst := range p.Installments {
		batch.Queue(
			`INSERT INTO installments (payment_plan_id, sequence_number, amount, due_date, status)
			VALUES ($1, $2, $3, $4, $5)`,
			inst.PlanID, inst.SequenceNumber, inst.Amount, inst.DueDate, inst.Status)
	}

	results := r.db.SendBatch(ctx, batch)
	for range p.Installments {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("erro ao criar parcela: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("erro ao criar parcelas: %w", err)
	}

	return nil
}

// FindByID implementa order.Repository.FindByID
func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	var o order.Order
	err := r.db.QueryRow(ctx,
		`SELECT id, customer_id, created_at FROM orders WHERE id = $1`,
		id).Scan(&o.ID, &o.CustomerID, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("erro ao buscar pedido: %w", err)
	}

	if err := r.loadItems(ctx, []*order.Order{&o}); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListByCustomer implementa order.Repository.ListByCustomer
func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*order.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, customer_id, created_at FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC, id DESC`,
		customerID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pedidos: %w", err)
	}

	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*order.Order, error) {
		var o order.Order
		err := row.Scan(&o.ID, &o.CustomerID, &o.CreatedAt)
		return &o, err
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pedidos: %w", err)
	}

	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// loadItems carrega itens, planos e parcelas dos pedidos com uma consulta por tabela
func (r *OrderRepository) loadItems(ctx context.Context, orders []*order.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byOrder := make(map[int64]*order.Order, len(orders))
	orderIDs := make([]int64, len(orders))
	for i, o := range orders {
		byOrder[o.ID] = o
		orderIDs[i] = o.ID
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, order_id, product_id, quantity, unit_price
		FROM line_items
		WHERE order_id = ANY($1)
		ORDER BY id`,
		orderIDs)
	if err != nil {
		return fmt.Errorf("erro ao buscar itens do pedido: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*order.LineItem, error) {
		var item order.LineItem
		err := row.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice)
		return &item, err
	})
	if err != nil {
		return fmt.Errorf("erro ao buscar itens do pedido: %w", err)
	}

	byItem := make(map[int64]*order.LineItem, len(items))
	itemIDs := make([]int64, len(items))
	for i, item := range items {
		byItem[item.ID] = item
		itemIDs[i] = item.ID
		o := byOrder[item.OrderID]
		o.Items = append(o.Items, item)
	}

	plans, err := findPlans(ctx, r.db, `WHERE line_item_id = ANY($1)`, itemIDs)
	if err != nil {
		return err
	}
	for _, p := range plans {
		if item, ok := byItem[p.LineItemID]; ok {
			item.PaymentPlan = p
		}
	}

	return nil
}

// findPlans busca planos pelo filtro informado e carrega suas parcelas em ordem
func findPlans(ctx context.Context, db DBTX, where string, arg any) ([]*payment.Plan, error) {
	rows, err := db.Query(ctx,
		`SELECT id, line_item_id, total_amount, down_payment, start_date, installment_count, created_at
		FROM payment_plans `+where+`
		ORDER BY id`,
		arg)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar informações de pagamento: %w", err)
	}

	plans, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*payment.Plan, error) {
		var p payment.Plan
		err := row.Scan(&p.ID, &p.LineItemID, &p.TotalAmount, &p.DownPayment,
			&p.StartDate, &p.InstallmentCount, &p.CreatedAt)
		return &p, err
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar informações de pagamento: %w", err)
	}
	if len(plans) == 0 {
		return nil, nil
	}

	byPlan := make(map[int64]*payment.Plan, len(plans))
	planIDs := make([]int64, len(plans))
	for i, p := range plans {
		byPlan[p.ID] = p
		planIDs[i] = p.ID
	}

	rows, err = db.Query(ctx,
		`SELECT `+installmentColumns+` FROM installments
		WHERE payment_plan_id = ANY($1)
		ORDER BY payment_plan_id, sequence_number`,
		planIDs)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar parcelas: %w", err)
	}

	installments, err := pgx.CollectRows(rows, scanInstallment)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar parcelas: %w", err)
	}
	for _, inst := range installments {
		p := byPlan[inst.PlanID]
		p.Installments = append(p.Installments, *inst)
	}

	return plans, nil
}
