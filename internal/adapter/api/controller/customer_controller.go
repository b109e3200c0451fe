package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/loja-colchoes/internal/adapter/api/dto"
	customerdomain "github.com/hugohenrick/loja-colchoes/internal/domain/customer"
	"github.com/hugohenrick/loja-colchoes/pkg/logger"
)

// CustomerController gerencia as requisições relacionadas a clientes
type CustomerController struct {
	customerRepo customerdomain.Repository
	logger       logger.Logger
}

// NewCustomerController cria uma nova instância de CustomerController
func NewCustomerController(customerRepo customerdomain.Repository, logger logger.Logger) *CustomerController {
	return &CustomerController{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create cria um novo cliente
// @Summary Criar cliente
// @Description Cadastra um novo cliente
// @Tags customers
// @Accept json
// @Produce json
// @Security Bearer
// @Param customer body dto.CustomerRequest true "Dados do cliente"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers [post]
func (c *CustomerController) Create(ctx *gin.Context) {
	var req dto.CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	customer, err := customerdomain.NewCustomer(req.Name, req.Document)
	if err != nil {
		respondError(ctx, c.logger, "erro ao criar cliente", err)
		return
	}

	if err := req.Apply(customer); err != nil {
		respondError(ctx, c.logger, "erro ao criar cliente", err)
		return
	}

	if err := c.customerRepo.Create(ctx.Request.Context(), customer); err != nil {
		respondError(ctx, c.logger, "erro ao salvar cliente", err)
		return
	}

	c.logger.Info("cliente cadastrado", "customer_id", customer.ID)
	ctx.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// Get retorna um cliente pelo ID
// @Summary Buscar cliente
// @Description Retorna os dados de um cliente pelo ID
// @Tags customers
// @Produce json
// @Security Bearer
// @Param id path int true "ID do cliente"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers/{id} [get]
func (c *CustomerController) Get(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	customer, err := c.customerRepo.FindByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.logger, "erro ao buscar cliente", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// List lista os clientes ativos
// @Summary Listar clientes
// @Description Retorna a lista de clientes ativos paginada
// @Tags customers
// @Produce json
// @Security Bearer
// @Param page query int false "Número da página"
// @Param page_size query int false "Tamanho da página"
// @Success 200 {object} dto.CustomerListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers [get]
func (c *CustomerController) List(ctx *gin.Context) {
	p := pagination(ctx)

	customers, err := c.customerRepo.List(ctx.Request.Context(), p.PageSize, p.Offset())
	if err != nil {
		respondError(ctx, c.logger, "erro ao listar clientes", err)
		return
	}

	total, err := c.customerRepo.Count(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.logger, "erro ao contar clientes", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerListResponse(customers, total, p.Page, p.PageSize))
}

// Update atualiza um cliente
// @Summary Atualizar cliente
// @Description Atualiza os dados de um cliente ativo. O CPF não é alterado.
// @Tags customers
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "ID do cliente"
// @Param customer body dto.CustomerRequest true "Dados do cliente"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers/{id} [put]
func (c *CustomerController) Update(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var req dto.CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	customer, err := c.customerRepo.FindByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.logger, "erro ao buscar cliente", err)
		return
	}
	if !customer.IsActive() {
		respondError(ctx, c.logger, "erro ao atualizar cliente", customerdomain.ErrCustomerNotFound)
		return
	}

	if err := req.Apply(customer); err != nil {
		respondError(ctx, c.logger, "erro ao atualizar cliente", err)
		return
	}

	if err := c.customerRepo.Update(ctx.Request.Context(), customer); err != nil {
		respondError(ctx, c.logger, "erro ao salvar cliente", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// Delete exclui logicamente um cliente
// @Summary Excluir cliente
// @Description Marca o cliente como excluído. O registro e seus pedidos são mantidos.
// @Tags customers
// @Produce json
// @Security Bearer
// @Param id path int true "ID do cliente"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers/{id} [delete]
func (c *CustomerController) Delete(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	if err := c.customerRepo.SoftDelete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, c.logger, "erro ao excluir cliente", err)
		return
	}

	c.logger.Info("cliente excluído", "customer_id", id)
	ctx.Status(http.StatusNoContent)
}
