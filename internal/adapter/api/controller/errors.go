package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/loja-colchoes/internal/adapter/api/dto"
	"github.com/hugohenrick/loja-colchoes/pkg/apperror"
	"github.com/hugohenrick/loja-colchoes/pkg/logger"
	"github.com/hugohenrick/loja-colchoes/pkg/middleware"
)

// statusFor traduz a categoria do erro para o status HTTP
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError escreve a resposta de erro. Erros de infraestrutura são
// registrados no log e não expõem detalhes ao cliente.
func respondError(ctx *gin.Context, log logger.Logger, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		middleware.FromContext(ctx, log).Error(message,
			"error", err,
			"path", ctx.FullPath(),
		)
		ctx.JSON(status, dto.NewErrorResponse(status, message, "erro interno do servidor"))
		return
	}

	ctx.JSON(status, dto.NewErrorResponse(status, message, err.Error()))
}

// badRequest responde 400 para requisições malformadas
func badRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
}

// paramID lê um parâmetro de rota numérico e positivo
func paramID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			http.StatusBadRequest,
			"parâmetro inválido",
			name+" deve ser um número inteiro positivo",
		))
		return 0, false
	}
	return id, true
}

// pagination lê page e page_size da query string
func pagination(ctx *gin.Context) dto.Pagination {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))
	return dto.GetPagination(page, pageSize)
}
