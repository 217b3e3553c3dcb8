package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/retailpos/backend/internal/infrastructure/auth"
)

func newPermissionRouter(claims *auth.Claims, guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		if claims != nil {
			c.Set(JWTClaimsKey, claims)
		}
		c.Next()
	})
	engine.POST("/guarded", guard, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func TestRequirePermission(t *testing.T) {
	do := func(engine *gin.Engine) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
		engine.ServeHTTP(w, req)
		return w
	}

	t.Run("rejects requests without claims", func(t *testing.T) {
		engine := newPermissionRouter(nil, RequirePermission("employees.manage"))

		w := do(engine)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects claims lacking the permission", func(t *testing.T) {
		claims := &auth.Claims{Permissions: []string{"orders.return"}}
		engine := newPermissionRouter(claims, RequirePermission("employees.manage"))

		w := do(engine)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("passes claims holding the permission", func(t *testing.T) {
		claims := &auth.Claims{Permissions: []string{"employees.manage"}}
		engine := newPermissionRouter(claims, RequirePermission("employees.manage"))

		w := do(engine)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wildcard grants everything", func(t *testing.T) {
		claims := &auth.Claims{Permissions: []string{"*"}}
		engine := newPermissionRouter(claims, RequirePermission("stock.adjust"))

		w := do(engine)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireAnyPermission(t *testing.T) {
	t.Run("passes when one of the listed permissions matches", func(t *testing.T) {
		claims := &auth.Claims{Permissions: []string{"reports.view"}}
		engine := newPermissionRouter(claims,
			RequireAnyPermission("reports.view", "employees.manage"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects when none match", func(t *testing.T) {
		claims := &auth.Claims{Permissions: []string{"orders.return"}}
		engine := newPermissionRouter(claims,
			RequireAnyPermission("reports.view", "employees.manage"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
