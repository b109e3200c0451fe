package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/loja-colchoes/internal/adapter/api/controller"
	"github.com/hugohenrick/loja-colchoes/pkg/auth"
)

// SetupAuthRoutes configura as rotas para autenticação
func SetupAuthRoutes(router *gin.RouterGroup, authController *controller.AuthController, jwtService *auth.JWTService) {
	authRouter := router.Group("/auth")
	{
		// Rota de login (não requer autenticação)
		authRouter.POST("/login", authController.Login)

		// Renovar o token exige um token ainda válido
		authRouter.POST("/refresh", auth.JWTAuthMiddleware(jwtService), authController.RefreshToken)

		// Rota para obter informações do usuário logado
		authRouter.GET("/me", auth.JWTAuthMiddleware(jwtService), authController.Me)
	}
}
