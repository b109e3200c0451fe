package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/loja-colchoes/internal/adapter/api/controller"
)

// RegisterStockRoutes registra as rotas do módulo de estoque
func RegisterStockRoutes(r *gin.RouterGroup, stockController *controller.StockController, adminOnly gin.HandlerFunc) {
	items := r.Group("/stock")
	{
		items.POST("", stockController.Create)
		items.GET("", stockController.List)
		items.GET("/:id", stockController.Get)
		items.PUT("/:id", stockController.Update)
		items.POST("/:id/adjust", stockController.Adjust)
		items.DELETE("/:id", adminOnly, stockController.Delete)
	}
}
