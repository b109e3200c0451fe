package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/loja-colchoes/internal/adapter/api/controller"
	"github.com/hugohenrick/loja-colchoes/internal/domain/user"
	"github.com/hugohenrick/loja-colchoes/pkg/auth"
)

// Controllers agrupa os controllers registrados na API
type Controllers struct {
	Auth     *controller.AuthController
	Customer *controller.CustomerController
	Stock    *controller.StockController
	Order    *controller.OrderController
	Payment  *controller.PaymentController
}

// Setup registra todas as rotas da API sob basePath. Apenas o login é
// público, as demais exigem um token JWT válido.
func Setup(router *gin.Engine, basePath string, c Controllers, jwtService *auth.JWTService) {
	api := router.Group(basePath)

	SetupAuthRoutes(api, c.Auth, jwtService)

	protected := api.Group("")
	protected.Use(auth.JWTAuthMiddleware(jwtService))

	// Exclusões ficam restritas ao administrador
	adminOnly := auth.RoleAuthMiddleware(string(user.RoleAdmin))

	RegisterCustomerRoutes(protected, c.Customer, c.Order, adminOnly)
	RegisterStockRoutes(protected, c.Stock, adminOnly)
	RegisterOrderRoutes(protected, c.Order)
	RegisterPaymentRoutes(protected, c.Payment)
}
