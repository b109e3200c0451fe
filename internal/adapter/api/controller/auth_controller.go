package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/loja-colchoes/internal/adapter/api/dto"
	"github.com/hugohenrick/loja-colchoes/internal/domain/user"
	"github.com/hugohenrick/loja-colchoes/pkg/auth"
	"github.com/hugohenrick/loja-colchoes/pkg/logger"
	"github.com/hugohenrick/loja-colchoes/pkg/metrics"
)

const tokenType = "Bearer"

// AuthController gerencia as requisições relacionadas à autenticação
type AuthController struct {
	userRepository user.Repository
	jwtService     *auth.JWTService
	metrics        *metrics.Metrics
	logger         logger.Logger
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(userRepository user.Repository, jwtService *auth.JWTService, m *metrics.Metrics, log logger.Logger) *AuthController {
	return &AuthController{
		userRepository: userRepository,
		jwtService:     jwtService,
		metrics:        m,
		logger:         log,
	}
}

// Login autentica um usuário e retorna um token JWT
// @Summary Autentica um usuário
// @Description Verifica as credenciais do usuário e retorna um token JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Credenciais de login"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	u, err := c.userRepository.FindByUsername(ctx.Request.Context(), request.Username)
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		respondError(ctx, c.logger, "erro ao autenticar usuário", err)
		return
	}

	// Usuário inexistente, inativo ou senha errada recebem a mesma resposta
	if u == nil || !u.IsActive() || !u.CheckPassword(request.Password) {
		c.metrics.RecordAuthAttempt(false)
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Credenciais inválidas", "Usuário ou senha incorretos"))
		return
	}

	token, expiresAt, err := c.jwtService.GenerateToken(u)
	if err != nil {
		respondError(ctx, c.logger, "erro ao gerar token", err)
		return
	}

	// Falha ao registrar o último login não impede o acesso
	if err := c.userRepository.UpdateLastLogin(ctx.Request.Context(), u.ID); err != nil {
		c.logger.Warn("erro ao atualizar último login", "user_id", u.ID, "error", err)
	}
	c.metrics.RecordAuthAttempt(true)

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		User:        dto.ToUserResponse(u),
		AccessToken: token,
		TokenType:   tokenType,
		ExpiresAt:   expiresAt,
	})
}

// RefreshToken renova o token JWT enviado no cabeçalho Authorization
// @Summary Renova um token JWT
// @Description Emite um novo token com a validade renovada
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	token, ok := auth.BearerToken(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Token inválido", "Use o formato 'Bearer <token>'"))
		return
	}

	newToken, expiresAt, err := c.jwtService.RefreshToken(token)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Token inválido", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: newToken,
		TokenType:   tokenType,
		ExpiresAt:   expiresAt,
	})
}

// Me retorna informações do usuário atual
// @Summary Retorna informações do usuário atual
// @Description Retorna informações do usuário autenticado
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	current, ok := auth.GetCurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Não autenticado", ""))
		return
	}

	u, err := c.userRepository.FindByID(ctx.Request.Context(), current.ID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Usuário não encontrado", "O usuário associado ao token não existe mais"))
			return
		}
		respondError(ctx, c.logger, "erro ao buscar usuário", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}
