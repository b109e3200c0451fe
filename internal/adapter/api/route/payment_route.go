package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/loja-colchoes/internal/adapter/api/controller"
)

// RegisterPaymentRoutes registra as rotas de informações de pagamento e parcelas
func RegisterPaymentRoutes(r *gin.RouterGroup, paymentController *controller.PaymentController) {
	plans := r.Group("/payment-plans")
	{
		plans.GET("/:id", paymentController.GetPlan)
		plans.PATCH("/:id/installments/:sequence/status", paymentController.UpdateInstallmentStatus)
	}

	r.GET("/installments/overdue", paymentController.ListOverdue)
}
