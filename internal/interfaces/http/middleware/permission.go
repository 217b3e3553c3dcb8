package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/retailpos/backend/internal/interfaces/http/dto"
)

// RequirePermission creates middleware that requires a specific permission.
// Roles holding the wildcard permission pass every check.
func RequirePermission(permission string) gin.HandlerFunc {
	return RequireAnyPermission(permission)
}

// RequireAnyPermission creates middleware that requires at least one of
// the given permissions
func RequireAnyPermission(permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}

		for _, p := range permissions {
			if claims.HasPermission(p) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewErrorResponse(dto.ErrCodeForbidden, "Insufficient permissions"))
	}
}
