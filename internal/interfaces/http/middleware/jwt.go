package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/retailpos/backend/internal/infrastructure/auth"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
)

// JWT context keys
const (
	JWTClaimsKey     = "jwt_claims"
	JWTEmployeeIDKey = "jwt_employee_id"
	JWTBranchIDKey   = "jwt_branch_id"
	JWTUsernameKey   = "jwt_username"
	AuthHeaderKey    = "Authorization"
	BearerPrefix     = "Bearer "
)

// JWTConfig holds configuration for the JWT middleware
type JWTConfig struct {
	JWTService *auth.JWTService
	// SkipPaths are exact paths that bypass authentication
	SkipPaths []string
	Logger    *zap.Logger
}

// JWTAuth creates JWT authentication middleware
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthWithConfig(JWTConfig{JWTService: jwtService})
}

// JWTAuthWithConfig creates JWT authentication middleware with custom config
func JWTAuthWithConfig(cfg JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Missing token")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			abortUnauthorized(c, cfg, err, "Token validation failed")
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTEmployeeIDKey, claims.EmployeeID)
		c.Set(JWTBranchIDKey, claims.BranchID)
		c.Set(JWTUsernameKey, claims.Username)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, cfg JWTConfig, err error, message string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("Authentication failed",
			zap.Error(err),
			zap.String("message", message),
			zap.String("path", c.Request.URL.Path),
		)
	}

	code := "UNAUTHORIZED"
	errorMessage := "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code = "TOKEN_EXPIRED"
		errorMessage = "Token has expired"
	case errors.Is(err, auth.ErrInvalidTokenType):
		code = "TOKEN_INVALID"
		errorMessage = "Invalid token type"
	case errors.Is(err, auth.ErrInvalidToken):
		code = "TOKEN_INVALID"
		errorMessage = "Invalid token"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, errorMessage))
}

// GetJWTClaims retrieves JWT claims from the gin context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTEmployeeID retrieves the employee ID string from the gin context
func GetJWTEmployeeID(c *gin.Context) string {
	if v, exists := c.Get(JWTEmployeeIDKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// GetJWTBranchID retrieves the branch ID string from the gin context
func GetJWTBranchID(c *gin.Context) string {
	if v, exists := c.Get(JWTBranchIDKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
