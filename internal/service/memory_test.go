package service

import (
	"context"
	"sort"
	"time"

	"github.com/hugohenrick/loja-colchoes/internal/domain/customer"
	"github.com/hugohenrick/loja-colchoes/internal/domain/order"
	"github.com/hugohenrick/loja-colchoes/internal/domain/payment"
	"github.com/hugohenrick/loja-colchoes/internal/domain/stock"
)

// memState é o "banco" em memória usado pelos testes do pacote
type memState struct {
	customers map[int64]customer.Status
	products  map[int64]bool
	orders    map[int64]*order.Order

	nextOrderID int64
	nextItemID  int64
	nextPlanID  int64
}

func newMemState() *memState {
	return &memState{
		customers: map[int64]customer.Status{},
		products:  map[int64]bool{},
		orders:    map[int64]*order.Order{},
	}
}

func (s *memState) clone() *memState {
	c := &memState{
		customers:   make(map[int64]customer.Status, len(s.customers)),
		products:    make(map[int64]bool, len(s.products)),
		orders:      make(map[int64]*order.Order, len(s.orders)),
		nextOrderID: s.nextOrderID,
		nextItemID:  s.nextItemID,
		nextPlanID:  s.nextPlanID,
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = cloneOrder(v)
	}
	return c
}

func cloneOrder(o *order.Order) *order.Order {
	c := *o
	c.Items = make([]*order.LineItem, len(o.Items))
	for i, item := range o.Items {
		ci := *item
		if item.PaymentPlan != nil {
			plan := *item.PaymentPlan
			plan.Installments = append([]payment.Installment(nil), item.PaymentPlan.Installments...)
			ci.PaymentPlan = &plan
		}
		c.Items[i] = &ci
	}
	return &c
}

func (s *memState) lineItemCount() int {
	n := 0
	for _, o := range s.orders {
		n += len(o.Items)
	}
	return n
}

func (s *memState) planCount() int {
	n := 0
	for _, o := range s.orders {
		for _, item := range o.Items {
			if item.PaymentPlan != nil {
				n++
			}
		}
	}
	return n
}

func (s *memState) installments() []payment.Installment {
	var out []payment.Installment
	for _, o := range s.orders {
		for _, item := range o.Items {
			if item.PaymentPlan != nil {
				out = append(out, item.PaymentPlan.Installments...)
			}
		}
	}
	return out
}

// memUnitOfWork aplica as gravações em uma cópia do estado e só a confirma
// quando fn termina sem erro
type memUnitOfWork struct {
	state *memState

	// failOnCreate faz Orders.Create falhar depois de gravar na cópia
	failOnCreate error

	existenceChecks int
	creates         int
}

func newMemUnitOfWork() *memUnitOfWork {
	return &memUnitOfWork{state: newMemState()}
}

func (u *memUnitOfWork) Do(ctx context.Context, fn func(r Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	staged := u.state.clone()
	repos := Repositories{
		Customers: &memCustomers{s: staged},
		Stock:     &memStock{s: staged, u: u},
		Orders:    &memOrders{s: staged, u: u},
		Payments:  &memPayments{s: staged},
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	u.state = staged
	return nil
}

type memCustomers struct {
	s *memState
}

func (r *memCustomers) Create(_ context.Context, c *customer.Customer) error {
	id := int64(len(r.s.customers) + 1)
	c.ID = id
	r.s.customers[id] = c.Status
	return nil
}

func (r *memCustomers) FindByID(_ context.Context, id int64) (*customer.Customer, error) {
	st, ok := r.s.customers[id]
	if !ok {
		return nil, customer.ErrCustomerNotFound
	}
	return &customer.Customer{ID: id, Status: st}, nil
}

func (r *memCustomers) FindByDocument(context.Context, string) (*customer.Customer, error) {
	return nil, customer.ErrCustomerNotFound
}

func (r *memCustomers) List(context.Context, int, int) ([]*customer.Customer, error) {
	return nil, nil
}

func (r *memCustomers) Count(context.Context) (int, error) {
	return len(r.s.customers), nil
}

func (r *memCustomers) Update(context.Context, *customer.Customer) error {
	return nil
}

func (r *memCustomers) SoftDelete(_ context.Context, id int64) error {
	r.s.customers[id] = customer.StatusDeleted
	return nil
}

func (r *memCustomers) ExistsActive(_ context.Context, id int64) (bool, error) {
	return r.s.customers[id] == customer.StatusActive, nil
}

type memStock struct {
	s *memState
	u *memUnitOfWork
}

func (r *memStock) Create(_ context.Context, item *stock.Item) error {
	item.ID = int64(len(r.s.products) + 1)
	r.s.products[item.ID] = true
	return nil
}

func (r *memStock) FindByID(_ context.Context, id int64) (*stock.Item, error) {
	if !r.s.products[id] {
		return nil, stock.ErrItemNotFound
	}
	return &stock.Item{ID: id}, nil
}

func (r *memStock) List(context.Context, stock.Status, int, int) ([]*stock.Item, error) {
	return nil, nil
}

func (r *memStock) Count(context.Context, stock.Status) (int, error) {
	return len(r.s.products), nil
}

func (r *memStock) Update(context.Context, *stock.Item) error {
	return nil
}

func (r *memStock) Delete(_ context.Context, id int64) error {
	delete(r.s.products, id)
	return nil
}

func (r *memStock) FindExistingIDs(_ context.Context, ids []int64) ([]int64, error) {
	r.u.existenceChecks++
	var out []int64
	for _, id := range ids {
		if r.s.products[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

type memOrders struct {
	s *memState
	u *memUnitOfWork
}

func (r *memOrders) Create(_ context.Context, o *order.Order) error {
	r.u.creates++
	r.s.nextOrderID++
	o.AssignID(r.s.nextOrderID)
	r.insertItems(o.Items)
	r.s.orders[o.ID] = cloneOrder(o)

	return r.u.failOnCreate
}

func (r *memOrders) AddItems(_ context.Context, orderID int64, items []*order.LineItem) error {
	stored, ok := r.s.orders[orderID]
	if !ok {
		return order.ErrOrderNotFound
	}
	for _, item := range items {
		item.OrderID = orderID
	}
	r.insertItems(items)

	c := cloneOrder(&order.Order{Items: items})
	stored.Items = append(stored.Items, c.Items...)
	return nil
}

func (r *memOrders) insertItems(items []*order.LineItem) {
	for _, item := range items {
		r.s.nextItemID++
		item.AssignID(r.s.nextItemID)
		if item.PaymentPlan != nil {
			r.s.nextPlanID++
			item.PaymentPlan.AssignID(r.s.nextPlanID)
		}
	}
}

func (r *memOrders) FindByID(_ context.Context, id int64) (*order.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (r *memOrders) ListByCustomer(_ context.Context, customerID int64) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range r.s.orders {
		if o.CustomerID == customerID {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type memPayments struct {
	s *memState
}

func (r *memPayments) plan(id int64) *payment.Plan {
	for _, o := range r.s.orders {
		for _, item := range o.Items {
			if item.PaymentPlan != nil && item.PaymentPlan.ID == id {
				return item.PaymentPlan
			}
		}
	}
	return nil
}

func (r *memPayments) FindPlanByID(_ context.Context, id int64) (*payment.Plan, error) {
	p := r.plan(id)
	if p == nil {
		return nil, payment.ErrPlanNotFound
	}
	c := *p
	c.Installments = append([]payment.Installment(nil), p.Installments...)
	return &c, nil
}

func (r *memPayments) FindInstallment(_ context.Context, planID int64, sequence int) (*payment.Installment, error) {
	p := r.plan(planID)
	if p == nil {
		return nil, payment.ErrInstallmentNotFound
	}
	inst, ok := p.Installment(sequence)
	if !ok {
		return nil, payment.ErrInstallmentNotFound
	}
	c := *inst
	return &c, nil
}

func (r *memPayments) UpdateInstallmentStatus(_ context.Context, inst *payment.Installment) error {
	p := r.plan(inst.PlanID)
	if p == nil {
		return payment.ErrInstallmentNotFound
	}
	stored, ok := p.Installment(inst.SequenceNumber)
	if !ok {
		return payment.ErrInstallmentNotFound
	}
	stored.Status = inst.Status
	return nil
}

func (r *memPayments) ListOverdue(_ context.Context, reference time.Time, limit, offset int) ([]*payment.Installment, error) {
	var out []*payment.Installment
	for _, inst := range r.s.installments() {
		if inst.IsOverdue(reference) {
			c := inst
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
