package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/loja-colchoes/internal/adapter/api/dto"
	"github.com/hugohenrick/loja-colchoes/internal/domain/stock"
	"github.com/hugohenrick/loja-colchoes/pkg/logger"
)

// StockController gerencia as requisições relacionadas ao estoque
type StockController struct {
	stockRepo stock.Repository
	logger    logger.Logger
}

// NewStockController cria uma nova instância de StockController
func NewStockController(stockRepo stock.Repository, logger logger.Logger) *StockController {
	return &StockController{
		stockRepo: stockRepo,
		logger:    logger,
	}
}

// Create cadastra um item no estoque
// @Summary Criar item de estoque
// @Description Cadastra um produto. O status é derivado da quantidade.
// @Tags stock
// @Accept json
// @Produce json
// @Security Bearer
// @Param item body dto.StockItemRequest true "Dados do item"
// @Success 201 {object} dto.StockItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stock [post]
func (c *StockController) Create(ctx *gin.Context) {
	var req dto.StockItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	item, err := stock.NewItem(req.Name, req.Category, req.Size, req.UnitPrice, req.Quantity)
	if err != nil {
		respondError(ctx, c.logger, "erro ao criar item de estoque", err)
		return
	}

	if err := c.stockRepo.Create(ctx.Request.Context(), item); err != nil {
		respondError(ctx, c.logger, "erro ao salvar item de estoque", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToStockItemResponse(item))
}

// Get retorna um item do estoque pelo ID
// @Summary Buscar item de estoque
// @Tags stock
// @Produce json
// @Security Bearer
// @Param id path int true "ID do item"
// @Success 200 {object} dto.StockItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stock/{id} [get]
func (c *StockController) Get(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	item, err := c.stockRepo.FindByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.logger, "erro ao buscar item de estoque", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStockItemResponse(item))
}

// List lista os itens do estoque
// @Summary Listar itens de estoque
// @Tags stock
// @Produce json
// @Security Bearer
// @Param status query string false "in_stock, low_stock ou out_of_stock"
// @Param page query int false "Número da página"
// @Param page_size query int false "Tamanho da página"
// @Success 200 {object} dto.StockListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stock [get]
func (c *StockController) List(ctx *gin.Context) {
	var status stock.Status
	if s := ctx.Query("status"); s != "" {
		var err error
		if status, err = stock.ParseStatus(s); err != nil {
			respondError(ctx, c.logger, "filtro inválido", err)
			return
		}
	}

	p := pagination(ctx)
	items, err := c.stockRepo.List(ctx.Request.Context(), status, p.PageSize, p.Offset())
	if err != nil {
		respondError(ctx, c.logger, "erro ao listar itens de estoque", err)
		return
	}

	total, err := c.stockRepo.Count(ctx.Request.Context(), status)
	if err != nil {
		respondError(ctx, c.logger, "erro ao contar itens de estoque", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStockListResponse(items, total, p.Page, p.PageSize))
}

// Update atualiza os dados e a quantidade de um item
// @Summary Atualizar item de estoque
// @Tags stock
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "ID do item"
// @Param item body dto.StockItemRequest true "Dados do item"
// @Success 200 {object} dto.StockItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stock/{id} [put]
func (c *StockController) Update(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var req dto.StockItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	item, err := c.stockRepo.FindByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.logger, "erro ao buscar item de estoque", err)
		return
	}

	if err := item.Update(req.Name, req.Category, req.Size, req.UnitPrice); err != nil {
		respondError(ctx, c.logger, "erro ao atualizar item de estoque", err)
		return
	}
	if err := item.SetQuantity(req.Quantity); err != nil {
		respondError(ctx, c.logger, "erro ao atualizar item de estoque", err)
		return
	}

	if err := c.stockRepo.Update(ctx.Request.Context(), item); err != nil {
		respondError(ctx, c.logger, "erro ao salvar item de estoque", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStockItemResponse(item))
}

// Adjust registra uma entrada ou saída de estoque
// @Summary Ajustar quantidade
// @Description Soma delta à quantidade atual. O resultado não pode ser negativo.
// @Tags stock
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "ID do item"
// @Param adjust body dto.StockAdjustRequest true "Variação da quantidade"
// @Success 200 {object} dto.StockItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stock/{id}/adjust [post]
func (c *StockController) Adjust(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var req dto.StockAdjustRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	item, err := c.stockRepo.FindByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.logger, "erro ao buscar item de estoque", err)
		return
	}

	if err := item.Adjust(req.Delta); err != nil {
		respondError(ctx, c.logger, "erro ao ajustar estoque", err)
		return
	}

	if err := c.stockRepo.Update(ctx.Request.Context(), item); err != nil {
		respondError(ctx, c.logger, "erro ao salvar item de estoque", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStockItemResponse(item))
}

// Delete remove um item que não esteja em nenhum pedido
// @Summary Excluir item de estoque
// @Tags stock
// @Security Bearer
// @Param id path int true "ID do item"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stock/{id} [delete]
func (c *StockController) Delete(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	if err := c.stockRepo.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, c.logger, "erro ao excluir item de estoque", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
