package order

import (
	"time"

	"github.com/hugohenrick/loja-colchoes/internal/domain/payment"
	"github.com/hugohenrick/loja-colchoes/pkg/apperror"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound     = apperror.New(apperror.ErrNotFound, "pedido não encontrado")
	ErrInvalidCustomer   = apperror.New(apperror.ErrInvalidArgument, "id do cliente deve ser positivo")
	ErrInvalidOrder      = apperror.New(apperror.ErrInvalidArgument, "id do pedido deve ser positivo")
	ErrNoItems           = apperror.New(apperror.ErrInvalidArgument, "o pedido precisa de ao menos um item")
	ErrInvalidProduct    = apperror.New(apperror.ErrInvalidArgument, "id do produto deve ser positivo")
	ErrInvalidQuantity   = apperror.New(apperror.ErrInvalidArgument, "quantidade deve ser positiva")
	ErrNegativeUnitPrice = apperror.New(apperror.ErrInvalidArgument, "preço unitário não pode ser negativo")
	ErrUnitPriceScale    = apperror.New(apperror.ErrInvalidArgument, "preço unitário aceita no máximo duas casas decimais")
)

// Order representa um pedido de um cliente
type Order struct {
	ID         int64       `json:"id"`
	CustomerID int64       `json:"customer_id"`
	Items      []*LineItem `json:"items"`
	CreatedAt  time.Time   `json:"created_at"`
}

// LineItem representa um item de pedido. O preço unitário é o informado no
// momento da venda, independente de alterações posteriores no estoque.
type LineItem struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"order_id"`
	ProductID   int64           `json:"product_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	PaymentPlan *payment.Plan   `json:"payment_plan,omitempty"`
}

// NewOrder cria um pedido vazio para o cliente
func NewOrder(customerID int64) (*Order, error) {
	if customerID <= 0 {
		return nil, ErrInvalidCustomer
	}
	return &Order{
		CustomerID: customerID,
		CreatedAt:  time.Now(),
	}, nil
}

// NewLineItem cria um item de pedido, opcionalmente com plano de pagamento.
// O preço é guardado como veio; mais de duas casas decimais é rejeitado.
func NewLineItem(productID int64, quantity int, unitPrice decimal.Decimal, plan *payment.Plan) (*LineItem, error) {
	if productID <= 0 {
		return nil, ErrInvalidProduct
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return nil, ErrNegativeUnitPrice
	}
	if !unitPrice.Equal(unitPrice.Truncate(2)) {
		return nil, ErrUnitPriceScale
	}

	return &LineItem{
		ProductID:   productID,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		PaymentPlan: plan,
	}, nil
}

// AddItem adiciona um item ao pedido
func (o *Order) AddItem(item *LineItem) {
	item.OrderID = o.ID
	o.Items = append(o.Items, item)
}

// AssignID define o ID do pedido depois de persistido
func (o *Order) AssignID(id int64) {
	o.ID = id
	for _, item := range o.Items {
		item.OrderID = id
	}
}

// Total soma os subtotais dos itens
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Subtotal é a quantidade multiplicada pelo preço unitário
func (i *LineItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// AssignID define o ID do item e liga o plano de pagamento a ele
func (i *LineItem) AssignID(id int64) {
	i.ID = id
	if i.PaymentPlan != nil {
		i.PaymentPlan.AttachTo(id)
	}
}
