package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/loja-colchoes/internal/adapter/api/dto"
	"github.com/hugohenrick/loja-colchoes/internal/domain/order"
	"github.com/hugohenrick/loja-colchoes/internal/service"
	"github.com/hugohenrick/loja-colchoes/pkg/logger"
)

// OrderService é o que o controller usa de service.OrderService
type OrderService interface {
	CreateOrder(ctx context.Context, customerID int64, inputs []service.LineItemInput) (*order.Order, error)
	AmendOrder(ctx context.Context, customerID, orderID int64, inputs []service.LineItemInput) (*order.Order, error)
	GetOrder(ctx context.Context, id int64) (*order.Order, error)
	ListCustomerOrders(ctx context.Context, customerID int64) ([]*order.Order, error)
}

// OrderController gerencia as requisições relacionadas a pedidos
type OrderController struct {
	orders OrderService
	logger logger.Logger
}

// NewOrderController cria uma nova instância de OrderController
func NewOrderController(orders OrderService, logger logger.Logger) *OrderController {
	return &OrderController{
		orders: orders,
		logger: logger,
	}
}

// Create cria um pedido
// @Summary Criar pedido
// @Description Cria o pedido com os itens e, para itens com condições de pagamento, as informações de pagamento e parcelas. Tudo ou nada.
// @Tags orders
// @Accept json
// @Produce json
// @Security Bearer
// @Param order body dto.CreateOrderRequest true "Dados do pedido"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders [post]
func (c *OrderController) Create(ctx *gin.Context) {
	var req dto.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	o, err := c.orders.CreateOrder(ctx.Request.Context(), req.CustomerID, dto.ToLineItemInputs(req.Items))
	if err != nil {
		respondError(ctx, c.logger, "erro ao criar pedido", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToOrderResponse(o))
}

// Amend adiciona itens a um pedido existente do cliente
// @Summary Adicionar itens ao pedido
// @Description Adiciona itens ao pedido indicado, que precisa pertencer ao cliente
// @Tags orders
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "ID do cliente"
// @Param orderId path int true "ID do pedido"
// @Param items body dto.AmendOrderRequest true "Itens adicionados"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers/{id}/orders/{orderId}/items [post]
func (c *OrderController) Amend(ctx *gin.Context) {
	customerID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	orderID, ok := paramID(ctx, "orderId")
	if !ok {
		return
	}

	var req dto.AmendOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	o, err := c.orders.AmendOrder(ctx.Request.Context(), customerID, orderID, dto.ToLineItemInputs(req.Items))
	if err != nil {
		respondError(ctx, c.logger, "erro ao alterar pedido", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderResponse(o))
}

// Get retorna um pedido completo
// @Summary Buscar pedido
// @Tags orders
// @Produce json
// @Security Bearer
// @Param id path int true "ID do pedido"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders/{id} [get]
func (c *OrderController) Get(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	o, err := c.orders.GetOrder(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.logger, "erro ao buscar pedido", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderResponse(o))
}

// ListByCustomer lista os pedidos de um cliente
// @Summary Listar pedidos do cliente
// @Tags orders
// @Produce json
// @Security Bearer
// @Param id path int true "ID do cliente"
// @Success 200 {array} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers/{id}/orders [get]
func (c *OrderController) ListByCustomer(ctx *gin.Context) {
	customerID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	orders, err := c.orders.ListCustomerOrders(ctx.Request.Context(), customerID)
	if err != nil {
		respondError(ctx, c.logger, "erro ao listar pedidos", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderListResponse(orders))
}
