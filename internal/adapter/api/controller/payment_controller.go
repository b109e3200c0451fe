package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/loja-colchoes/internal/adapter/api/dto"
	"github.com/hugohenrick/loja-colchoes/internal/domain/payment"
	"github.com/hugohenrick/loja-colchoes/pkg/logger"
)

// PaymentService é o que o controller usa de service.PaymentService
type PaymentService interface {
	UpdateInstallmentStatus(ctx context.Context, planID int64, sequence int, status string) (*payment.Installment, error)
	GetPlan(ctx context.Context, id int64) (*payment.Plan, error)
	ListOverdue(ctx context.Context, reference time.Time, limit, offset int) ([]*payment.Installment, error)
}

// PaymentController gerencia as requisições relacionadas a pagamentos
type PaymentController struct {
	payments PaymentService
	logger   logger.Logger
}

// NewPaymentController cria uma nova instância de PaymentController
func NewPaymentController(payments PaymentService, logger logger.Logger) *PaymentController {
	return &PaymentController{
		payments: payments,
		logger:   logger,
	}
}

// GetPlan retorna as informações de pagamento com parcelas e totais
// @Summary Buscar informações de pagamento
// @Tags payments
// @Produce json
// @Security Bearer
// @Param id path int true "ID das informações de pagamento"
// @Success 200 {object} dto.PaymentPlanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /payment-plans/{id} [get]
func (c *PaymentController) GetPlan(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	plan, err := c.payments.GetPlan(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.logger, "erro ao buscar informações de pagamento", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentPlanResponse(plan))
}

// UpdateInstallmentStatus altera o status de uma parcela
// @Summary Alterar status da parcela
// @Description A parcela é identificada pelas informações de pagamento e pelo número. Qualquer status pode ir para qualquer outro.
// @Tags payments
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "ID das informações de pagamento"
// @Param sequence path int true "Número da parcela"
// @Param status body dto.UpdateInstallmentStatusRequest true "Novo status"
// @Success 200 {object} dto.InstallmentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /payment-plans/{id}/installments/{sequence}/status [patch]
func (c *PaymentController) UpdateInstallmentStatus(ctx *gin.Context) {
	planID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	sequence, ok := paramID(ctx, "sequence")
	if !ok {
		return
	}

	var req dto.UpdateInstallmentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	inst, err := c.payments.UpdateInstallmentStatus(ctx.Request.Context(), planID, int(sequence), req.Status)
	if err != nil {
		respondError(ctx, c.logger, "erro ao alterar status da parcela", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInstallmentResponse(inst))
}

// ListOverdue lista as parcelas pendentes vencidas
// @Summary Listar parcelas vencidas
// @Description Parcelas pendentes com vencimento anterior à data de referência (padrão: hoje)
// @Tags payments
// @Produce json
// @Security Bearer
// @Param date query string false "Data de referência (AAAA-MM-DD)"
// @Param limit query int false "Quantidade máxima"
// @Param offset query int false "Deslocamento"
// @Success 200 {array} dto.InstallmentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /installments/overdue [get]
func (c *PaymentController) ListOverdue(ctx *gin.Context) {
	var reference time.Time
	if s := ctx.Query("date"); s != "" {
		d, err := dto.ParseDate(s)
		if err != nil {
			badRequest(ctx, err)
			return
		}
		reference = d.Time
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	installments, err := c.payments.ListOverdue(ctx.Request.Context(), reference, limit, offset)
	if err != nil {
		respondError(ctx, c.logger, "erro ao listar parcelas vencidas", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInstallmentListResponse(installments))
}
