package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/retailpos/backend/internal/application/identity"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates an employee and returns a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var input identityapp.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	input.IP = c.ClientIP()

	result, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RefreshToken exchanges a refresh token for a new token pair
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input identityapp.RefreshTokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Me returns the authenticated employee's profile
func (h *AuthHandler) Me(c *gin.Context) {
	employeeID, err := getEmployeeID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	info, err := h.authService.GetCurrentEmployee(c.Request.Context(), employeeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// ChangePassword updates the authenticated employee's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	employeeID, err := getEmployeeID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var input identityapp.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), employeeID, input); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
