package dto

import (
	"time"

	"github.com/hugohenrick/loja-colchoes/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// StockItemRequest representa os dados de um item de estoque para criação ou atualização
type StockItemRequest struct {
	Name      string          `json:"name" binding:"required"`
	Category  string          `json:"category"`
	Size      string          `json:"size"`
	UnitPrice decimal.Decimal `json:"unit_price" swaggertype:"string" example:"1899.90"`
	Quantity  int             `json:"quantity"`
}

// StockAdjustRequest representa uma entrada (positiva) ou saída (negativa) de estoque
type StockAdjustRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// StockItemResponse representa a resposta com dados de um item de estoque
type StockItemResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	Size      string    `json:"size,omitempty"`
	UnitPrice string    `json:"unit_price" example:"1899.90"`
	Quantity  int       `json:"quantity"`
	Status    string    `json:"status" example:"in_stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StockListResponse representa a resposta com a lista de itens paginada
type StockListResponse struct {
	Data       []StockItemResponse `json:"data"`
	TotalCount int                 `json:"total_count"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
}

// ToStockItemResponse converte um item do domínio para DTO de resposta
func ToStockItemResponse(i *stock.Item) StockItemResponse {
	return StockItemResponse{
		ID:        i.ID,
		Name:      i.Name,
		Category:  i.Category,
		Size:      i.Size,
		UnitPrice: money(i.UnitPrice),
		Quantity:  i.Quantity,
		Status:    string(i.Status),
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// ToStockListResponse monta a resposta paginada de itens de estoque
func ToStockListResponse(items []*stock.Item, totalCount, page, pageSize int) StockListResponse {
	data := make([]StockItemResponse, 0, len(items))
	for _, i := range items {
		data = append(data, ToStockItemResponse(i))
	}

	return StockListResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(totalCount, pageSize),
	}
}
