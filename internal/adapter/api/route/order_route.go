package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/loja-colchoes/internal/adapter/api/controller"
)

// RegisterOrderRoutes registra as rotas de pedidos
func RegisterOrderRoutes(r *gin.RouterGroup, orderController *controller.OrderController) {
	orders := r.Group("/orders")
	{
		orders.POST("", orderController.Create)
		orders.GET("/:id", orderController.Get)
	}
}
