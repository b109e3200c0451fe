package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/loja-colchoes/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(t *testing.T, svc *JWTService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	protected := r.Group("/", JWTAuthMiddleware(svc))
	protected.GET("/me", func(c *gin.Context) {
		u, ok := GetCurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": u.ID, "role": u.Role})
	})
	protected.DELETE("/admin", RoleAuthMiddleware(string(user.RoleAdmin)), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func doRequest(r http.Handler, method, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	svc, err := NewJWTService("segredo", time.Hour)
	require.NoError(t, err)
	r := newProtectedRouter(t, svc)

	token, _, err := svc.GenerateToken(testUser())
	require.NoError(t, err)

	tests := []struct {
		name          string
		authorization string
		want          int
	}{
		{"sem cabeçalho", "", http.StatusUnauthorized},
		{"formato inválido", "Token " + token, http.StatusUnauthorized},
		{"token inválido", "Bearer abc", http.StatusUnauthorized},
		{"token válido", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, "/me", tt.authorization)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRoleAuthMiddleware(t *testing.T) {
	svc, _ := NewJWTService("segredo", time.Hour)
	r := newProtectedRouter(t, svc)

	seller, _, err := svc.GenerateToken(testUser())
	require.NoError(t, err)
	admin, _, err := svc.GenerateToken(&user.User{ID: 1, Username: "admin", Role: user.RoleAdmin})
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doRequest(r, http.MethodDelete, "/admin", "Bearer "+seller).Code)
	assert.Equal(t, http.StatusNoContent, doRequest(r, http.MethodDelete, "/admin", "Bearer "+admin).Code)
}
