package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/loja-colchoes/internal/adapter/api/controller"
)

// RegisterCustomerRoutes registra as rotas do módulo de clientes, incluindo
// os pedidos de cada cliente
func RegisterCustomerRoutes(r *gin.RouterGroup, customerController *controller.CustomerController, orderController *controller.OrderController, adminOnly gin.HandlerFunc) {
	customers := r.Group("/customers")
	{
		customers.POST("", customerController.Create)
		customers.GET("", customerController.List)
		customers.GET("/:id", customerController.Get)
		customers.PUT("/:id", customerController.Update)
		customers.DELETE("/:id", adminOnly, customerController.Delete)

		customers.GET("/:id/orders", orderController.ListByCustomer)
		customers.POST("/:id/orders/:orderId/items", orderController.Amend)
	}
}
