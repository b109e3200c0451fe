package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hugohenrick/loja-colchoes/pkg/logger"
)

const (
	// RequestIDHeader é o cabeçalho que transporta o ID da requisição
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"
	loggerKey    = "logger"
)

// RequestID garante um ID único por requisição, reaproveitando o recebido no
// cabeçalho quando houver, e guarda um logger com esse ID no contexto do Gin
func RequestID(base logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Header(RequestIDHeader, requestID)
		c.Set(requestIDKey, requestID)
		c.Set(loggerKey, base.With("request_id", requestID))

		c.Next()
	}
}

// RequestLogger registra método, caminho, status e latência de cada requisição
func RequestLogger(base logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log := FromContext(c, base)
		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
		}
		if c.Writer.Status() >= 500 {
			log.Error("requisição com erro", fields...)
			return
		}
		log.Info("requisição atendida", fields...)
	}
}

// FromContext retorna o logger da requisição ou o logger padrão informado
func FromContext(c *gin.Context, fallback logger.Logger) logger.Logger {
	if l, ok := c.Get(loggerKey); ok {
		if log, ok := l.(logger.Logger); ok {
			return log
		}
	}
	return fallback
}

// GetRequestID retorna o ID da requisição atual
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
