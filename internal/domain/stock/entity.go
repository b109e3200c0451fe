package stock

import (
	"strings"
	"time"

	"github.com/hugohenrick/loja-colchoes/pkg/apperror"
	"github.com/shopspring/decimal"
)

var (
	ErrItemNotFound      = apperror.New(apperror.ErrNotFound, "produto não encontrado")
	ErrItemInUse         = apperror.New(apperror.ErrConflict, "produto referenciado por pedidos não pode ser excluído")
	ErrEmptyName         = apperror.New(apperror.ErrInvalidArgument, "nome do produto não pode ser vazio")
	ErrNegativeQuantity  = apperror.New(apperror.ErrInvalidArgument, "quantidade em estoque não pode ser negativa")
	ErrNegativePrice     = apperror.New(apperror.ErrInvalidArgument, "preço unitário não pode ser negativo")
	ErrInvalidStatusName = apperror.New(apperror.ErrInvalidArgument, "status de estoque inválido")
)

// Limite acima do qual o item é considerado com estoque normal
const lowStockThreshold = 10

// Status representa a situação do item em estoque. Nunca é atribuído
// diretamente: é sempre derivado da quantidade.
type Status string

const (
	StatusInStock    Status = "in_stock"     // Em estoque
	StatusLowStock   Status = "low_stock"    // Estoque baixo
	StatusOutOfStock Status = "out_of_stock" // Sem estoque
)

// StatusFor deriva o status a partir da quantidade disponível
func StatusFor(quantity int) Status {
	switch {
	case quantity > lowStockThreshold:
		return StatusInStock
	case quantity > 0:
		return StatusLowStock
	default:
		return StatusOutOfStock
	}
}

// ParseStatus converte o nome de um status, usado em filtros de listagem
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusInStock:
		return StatusInStock, nil
	case StatusLowStock:
		return StatusLowStock, nil
	case StatusOutOfStock:
		return StatusOutOfStock, nil
	}
	return "", ErrInvalidStatusName
}

// Item representa um produto (colchão, cama box, travesseiro...) em estoque
type Item struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`       // Nome
	Category  string          `json:"category"`   // Categoria
	Size      string          `json:"size"`       // Tamanho (solteiro, casal, queen...)
	UnitPrice decimal.Decimal `json:"unit_price"` // Preço unitário
	Quantity  int             `json:"quantity"`   // Quantidade disponível
	Status    Status          `json:"status"`     // Derivado de Quantity
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewItem cria um novo item de estoque
func NewItem(name, category, size string, unitPrice decimal.Decimal, quantity int) (*Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if unitPrice.IsNegative() {
		return nil, ErrNegativePrice
	}
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}

	now := time.Now()
	return &Item{
		Name:      name,
		Category:  category,
		Size:      size,
		UnitPrice: unitPrice.Round(2),
		Quantity:  quantity,
		Status:    StatusFor(quantity),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetQuantity altera a quantidade e recalcula o status
func (i *Item) SetQuantity(quantity int) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	i.Quantity = quantity
	i.Status = StatusFor(quantity)
	i.UpdatedAt = time.Now()
	return nil
}

// Adjust soma delta à quantidade atual (delta negativo para saídas)
func (i *Item) Adjust(delta int) error {
	return i.SetQuantity(i.Quantity + delta)
}

// Update atualiza os dados descritivos e o preço do item
func (i *Item) Update(name, category, size string, unitPrice decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if unitPrice.IsNegative() {
		return ErrNegativePrice
	}

	i.Name = name
	i.Category = category
	i.Size = size
	i.UnitPrice = unitPrice.Round(2)
	i.UpdatedAt = time.Now()
	return nil
}
