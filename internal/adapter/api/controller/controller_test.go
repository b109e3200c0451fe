package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/loja-colchoes/internal/adapter/api/dto"
	"github.com/hugohenrick/loja-colchoes/internal/domain/customer"
	"github.com/hugohenrick/loja-colchoes/internal/domain/order"
	"github.com/hugohenrick/loja-colchoes/internal/domain/payment"
	"github.com/hugohenrick/loja-colchoes/internal/domain/stock"
	"github.com/hugohenrick/loja-colchoes/internal/domain/user"
	"github.com/hugohenrick/loja-colchoes/internal/service"
	"github.com/hugohenrick/loja-colchoes/pkg/apperror"
	"github.com/hugohenrick/loja-colchoes/pkg/auth"
	"github.com/hugohenrick/loja-colchoes/pkg/logger"
	"github.com/hugohenrick/loja-colchoes/pkg/metrics"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(order.ErrNoItems))
	assert.Equal(t, http.StatusNotFound, statusFor(&stock.MissingProductsError{IDs: []int64{7}}))
	assert.Equal(t, http.StatusUnauthorized, statusFor(apperror.New(apperror.ErrUnauthorized, "x")))
	assert.Equal(t, http.StatusConflict, statusFor(stock.ErrItemInUse))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("timeout")))
}

// fakeOrderService registra a última chamada e retorna o que foi configurado
type fakeOrderService struct {
	order *order.Order
	err   error

	customerID int64
	orderID    int64
	inputs     []service.LineItemInput
}

func (f *fakeOrderService) CreateOrder(_ context.Context, customerID int64, inputs []service.LineItemInput) (*order.Order, error) {
	f.customerID, f.inputs = customerID, inputs
	return f.order, f.err
}

func (f *fakeOrderService) AmendOrder(_ context.Context, customerID, orderID int64, inputs []service.LineItemInput) (*order.Order, error) {
	f.customerID, f.orderID, f.inputs = customerID, orderID, inputs
	return f.order, f.err
}

func (f *fakeOrderService) GetOrder(_ context.Context, id int64) (*order.Order, error) {
	f.orderID = id
	return f.order, f.err
}

func (f *fakeOrderService) ListCustomerOrders(_ context.Context, customerID int64) ([]*order.Order, error) {
	f.customerID = customerID
	if f.err != nil {
		return nil, f.err
	}
	return []*order.Order{f.order}, nil
}

func newOrderRouter(svc OrderService) *gin.Engine {
	c := NewOrderController(svc, logger.NewNop())
	r := gin.New()
	r.POST("/orders", c.Create)
	r.GET("/orders/:id", c.Get)
	r.GET("/customers/:id/orders", c.ListByCustomer)
	r.POST("/customers/:id/orders/:orderId/items", c.Amend)
	return r
}

func sampleOrder() *order.Order {
	plan, _ := payment.NewPlan(payment.Terms{
		TotalAmount:      decimal.NewFromInt(1000),
		StartDate:        time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		InstallmentCount: 3,
	})
	item, _ := order.NewLineItem(5, 1, decimal.NewFromInt(1000), plan)
	o, _ := order.NewOrder(1)
	o.AddItem(item)
	o.AssignID(9)
	item.AssignID(20)
	plan.AssignID(30)
	return o
}

func TestOrderController_Create(t *testing.T) {
	svc := &fakeOrderService{order: sampleOrder()}
	r := newOrderRouter(svc)

	w := perform(r, http.MethodPost, "/orders", map[string]interface{}{
		"customer_id": 1,
		"items": []map[string]interface{}{{
			"product_id": 5, "quantity": 1, "unit_price": "1000.00",
			"payment_terms": map[string]interface{}{"total_amount": "1000", "start_date": "2024-01-31", "installment_count": 3},
		}},
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(1), svc.customerID)
	require.Len(t, svc.inputs, 1)
	require.NotNil(t, svc.inputs[0].PaymentTerms)

	var resp dto.OrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(9), resp.ID)
	assert.Equal(t, "1000.00", resp.Total)
	plan := resp.Items[0].PaymentPlan
	require.NotNil(t, plan)
	assert.Equal(t, int64(20), plan.LineItemID)
	assert.Equal(t, "333.34", plan.Installments[2].Amount)
	assert.Equal(t, "2024-02-29", plan.Installments[1].DueDate.Format(dto.DateLayout))
	assert.Equal(t, "1000.00", plan.AmountPending)
}

func TestOrderController_CreateErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantDetails string
	}{
		{"produto ausente", &stock.MissingProductsError{IDs: []int64{7, 9}}, http.StatusNotFound, "produtos não encontrados: 7,9"},
		{"cliente ausente", customer.ErrCustomerNotFound, http.StatusNotFound, "cliente não encontrado"},
		{"sem itens", order.ErrNoItems, http.StatusBadRequest, "o pedido precisa de ao menos um item"},
		{"parcelas demais", payment.ErrTooManyInstallments, http.StatusBadRequest, "quantidade de parcelas acima do máximo permitido (360)"},
		{"falha do banco", errors.New("conexão perdida com 10.0.0.5"), http.StatusInternalServerError, "erro interno do servidor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newOrderRouter(&fakeOrderService{err: tt.err})
			w := perform(r, http.MethodPost, "/orders", map[string]interface{}{"customer_id": 1, "items": []interface{}{}})

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantDetails, decodeError(t, w).Details)
		})
	}
}

// idleUnitOfWork falha o teste se alguma transação for aberta
type idleUnitOfWork struct {
	calls int
}

func (u *idleUnitOfWork) Do(context.Context, func(service.Repositories) error) error {
	u.calls++
	return errors.New("transação inesperada")
}

func TestOrderController_CreateRejectsInvalidTermsBeforeDatabase(t *testing.T) {
	tests := []struct {
		name        string
		item        map[string]interface{}
		wantDetails string
	}{
		{
			"parcelas acima do máximo",
			map[string]interface{}{
				"product_id": 5, "quantity": 1, "unit_price": "1000.00",
				"payment_terms": map[string]interface{}{"total_amount": "1000", "installment_count": 10000000000},
			},
			payment.ErrTooManyInstallments.Error(),
		},
		{
			"preço com três casas",
			map[string]interface{}{"product_id": 5, "quantity": 1, "unit_price": "999.999"},
			order.ErrUnitPriceScale.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uow := &idleUnitOfWork{}
			svc := service.NewOrderService(uow, logger.NewNop(), metrics.New("test"))
			r := newOrderRouter(svc)

			w := perform(r, http.MethodPost, "/orders", map[string]interface{}{
				"customer_id": 1,
				"items":       []map[string]interface{}{tt.item},
			})

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantDetails, decodeError(t, w).Details)
			assert.Zero(t, uow.calls)
		})
	}
}

func TestOrderController_CreateMalformedBody(t *testing.T) {
	r := newOrderRouter(&fakeOrderService{})
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(`{"customer_id": "um"`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderController_AmendRequiresExplicitOrder(t *testing.T) {
	svc := &fakeOrderService{order: sampleOrder()}
	r := newOrderRouter(svc)

	w := perform(r, http.MethodPost, "/customers/1/orders/9/items", map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": 6, "quantity": 1, "unit_price": "10"}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), svc.customerID)
	assert.Equal(t, int64(9), svc.orderID)

	w = perform(r, http.MethodPost, "/customers/1/orders/primeiro/items", map[string]interface{}{"items": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderController_GetAndList(t *testing.T) {
	svc := &fakeOrderService{order: sampleOrder()}
	r := newOrderRouter(svc)

	w := perform(r, http.MethodGet, "/orders/9", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(9), svc.orderID)

	w = perform(r, http.MethodGet, "/customers/1/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []dto.OrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = perform(r, http.MethodGet, "/orders/0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type fakePaymentService struct {
	inst *payment.Installment
	plan *payment.Plan
	err  error

	planID    int64
	sequence  int
	status    string
	reference time.Time
}

func (f *fakePaymentService) UpdateInstallmentStatus(_ context.Context, planID int64, sequence int, status string) (*payment.Installment, error) {
	f.planID, f.sequence, f.status = planID, sequence, status
	return f.inst, f.err
}

func (f *fakePaymentService) GetPlan(_ context.Context, id int64) (*payment.Plan, error) {
	f.planID = id
	return f.plan, f.err
}

func (f *fakePaymentService) ListOverdue(_ context.Context, reference time.Time, _, _ int) ([]*payment.Installment, error) {
	f.reference = reference
	if f.err != nil {
		return nil, f.err
	}
	return []*payment.Installment{f.inst}, nil
}

func newPaymentRouter(svc PaymentService) *gin.Engine {
	c := NewPaymentController(svc, logger.NewNop())
	r := gin.New()
	r.GET("/payment-plans/:id", c.GetPlan)
	r.PATCH("/payment-plans/:id/installments/:sequence/status", c.UpdateInstallmentStatus)
	r.GET("/installments/overdue", c.ListOverdue)
	return r
}

func TestPaymentController_UpdateInstallmentStatus(t *testing.T) {
	svc := &fakePaymentService{inst: &payment.Installment{
		PlanID: 10, SequenceNumber: 2, Amount: decimal.NewFromInt(100), Status: payment.StatusPaid,
		DueDate: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
	}}
	r := newPaymentRouter(svc)

	w := perform(r, http.MethodPatch, "/payment-plans/10/installments/2/status", map[string]string{"status": "paid"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(10), svc.planID)
	assert.Equal(t, 2, svc.sequence)
	assert.Equal(t, "paid", svc.status)

	var resp dto.InstallmentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "100.00", resp.Amount)
	assert.Equal(t, "paid", resp.Status)

	w = perform(r, http.MethodPatch, "/payment-plans/10/installments/2/status", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentController_UpdateInstallmentStatusErrors(t *testing.T) {
	w := perform(newPaymentRouter(&fakePaymentService{err: payment.ErrInstallmentNotFound}),
		http.MethodPatch, "/payment-plans/10/installments/2/status", map[string]string{"status": "paid"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = perform(newPaymentRouter(&fakePaymentService{err: payment.ErrInvalidStatus}),
		http.MethodPatch, "/payment-plans/10/installments/2/status", map[string]string{"status": "quitada"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentController_ListOverdue(t *testing.T) {
	svc := &fakePaymentService{inst: &payment.Installment{PlanID: 1, SequenceNumber: 1, Status: payment.StatusPending}}
	r := newPaymentRouter(svc)

	w := perform(r, http.MethodGet, "/installments/overdue?date=2024-03-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), svc.reference)

	w = perform(r, http.MethodGet, "/installments/overdue", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.reference.IsZero())

	w = perform(r, http.MethodGet, "/installments/overdue?date=01/03/2024", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// fakeStockRepository cobre apenas o necessário para os testes do controller
type fakeStockRepository struct {
	stock.Repository
	items     map[int64]*stock.Item
	deleteErr error
}

func (f *fakeStockRepository) Create(_ context.Context, item *stock.Item) error {
	item.ID = int64(len(f.items) + 1)
	f.items[item.ID] = item
	return nil
}

func (f *fakeStockRepository) FindByID(_ context.Context, id int64) (*stock.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, stock.ErrItemNotFound
	}
	return item, nil
}

func (f *fakeStockRepository) Update(context.Context, *stock.Item) error {
	return nil
}

func (f *fakeStockRepository) Delete(context.Context, int64) error {
	return f.deleteErr
}

func TestStockController(t *testing.T) {
	repo := &fakeStockRepository{items: map[int64]*stock.Item{}}
	c := NewStockController(repo, logger.NewNop())
	r := gin.New()
	r.POST("/stock", c.Create)
	r.POST("/stock/:id/adjust", c.Adjust)
	r.DELETE("/stock/:id", c.Delete)

	w := perform(r, http.MethodPost, "/stock", map[string]interface{}{"name": "Colchão Solteiro", "unit_price": "799.90", "quantity": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodPost, "/stock", map[string]interface{}{"name": "Colchão Solteiro", "unit_price": "799.90", "quantity": 11})
	require.Equal(t, http.StatusCreated, w.Code)
	var created dto.StockItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "in_stock", created.Status)
	assert.Equal(t, "799.90", created.UnitPrice)

	w = perform(r, http.MethodPost, "/stock/1/adjust", map[string]int{"delta": -1})
	require.Equal(t, http.StatusOK, w.Code)
	var adjusted dto.StockItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &adjusted))
	assert.Equal(t, "low_stock", adjusted.Status)

	w = perform(r, http.MethodPost, "/stock/1/adjust", map[string]int{"delta": -50})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	repo.deleteErr = stock.ErrItemInUse
	w = perform(r, http.MethodDelete, "/stock/1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

type fakeCustomerRepository struct {
	customer.Repository
	createErr error
	created   *customer.Customer
}

func (f *fakeCustomerRepository) Create(_ context.Context, c *customer.Customer) error {
	if f.createErr != nil {
		return f.createErr
	}
	c.ID = 1
	f.created = c
	return nil
}

func TestCustomerController_Create(t *testing.T) {
	repo := &fakeCustomerRepository{}
	c := NewCustomerController(repo, logger.NewNop())
	r := gin.New()
	r.POST("/customers", c.Create)

	body := map[string]interface{}{
		"name":     "João Pereira",
		"document": "987.654.321-00",
		"email":    "joao@example.com",
		"professional": map[string]interface{}{
			"company": "Metalúrgica Sul", "income": "4200.50", "since": "2018-05-02",
		},
	}

	w := perform(r, http.MethodPost, "/customers", body)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, repo.created)
	assert.Equal(t, "98765432100", repo.created.Document)
	require.NotNil(t, repo.created.Professional)
	assert.Equal(t, "4200.5", repo.created.Professional.Income.String())

	body["email"] = "sem-arroba"
	w = perform(r, http.MethodPost, "/customers", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body["email"] = "joao@example.com"
	repo.createErr = customer.ErrDuplicateKey
	w = perform(r, http.MethodPost, "/customers", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

type fakeUserRepository struct {
	user.Repository
	users map[string]*user.User
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*user.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepository) FindByID(_ context.Context, id int64) (*user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepository) UpdateLastLogin(context.Context, int64) error {
	return nil
}

func TestAuthController_LoginAndMe(t *testing.T) {
	u, err := user.NewUser("caixa", "Caixa Loja", "senha-forte", user.RoleSeller)
	require.NoError(t, err)
	u.ID = 7
	repo := &fakeUserRepository{users: map[string]*user.User{"caixa": u}}

	jwtService, err := auth.NewJWTService("segredo", time.Hour)
	require.NoError(t, err)
	c := NewAuthController(repo, jwtService, nil, logger.NewNop())

	r := gin.New()
	r.POST("/auth/login", c.Login)
	r.GET("/auth/me", auth.JWTAuthMiddleware(jwtService), c.Me)

	w := perform(r, http.MethodPost, "/auth/login", map[string]string{"username": "caixa", "password": "errada"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(r, http.MethodPost, "/auth/login", map[string]string{"username": "ninguem", "password": "senha-forte"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(r, http.MethodPost, "/auth/login", map[string]string{"username": "caixa"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodPost, "/auth/login", map[string]string{"username": "caixa", "password": "senha-forte"})
	require.Equal(t, http.StatusOK, w.Code)
	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.Equal(t, "Bearer", login.TokenType)
	assert.NotEmpty(t, login.AccessToken)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var me dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, int64(7), me.ID)
	assert.Equal(t, "caixa", me.Username)
}
