package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	financeapp "github.com/retailpos/backend/internal/application/finance"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
)

// StoreCreditHandler handles store credit endpoints
type StoreCreditHandler struct {
	BaseHandler
	creditService *financeapp.StoreCreditService
}

// NewStoreCreditHandler creates a new StoreCreditHandler
func NewStoreCreditHandler(creditService *financeapp.StoreCreditService) *StoreCreditHandler {
	return &StoreCreditHandler{creditService: creditService}
}

// IssueGoodwill issues a goodwill credit outside of the return flow
func (h *StoreCreditHandler) IssueGoodwill(c *gin.Context) {
	employeeID, err := getEmployeeID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.IssueGoodwillCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.EmployeeID = employeeID

	resp, err := h.creditService.IssueGoodwill(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID returns a single store credit
func (h *StoreCreditHandler) GetByID(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid credit ID")
		return
	}

	resp, err := h.creditService.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListByOrder returns the credits issued against one order
func (h *StoreCreditHandler) ListByOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("order_id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	credits, err := h.creditService.ListByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, credits)
}

// ListActive returns credits that can still be redeemed
func (h *StoreCreditHandler) ListActive(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	credits, err := h.creditService.ListActive(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, credits)
}

// List returns a paginated store credit list
func (h *StoreCreditHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if creditType := c.Query("credit_type"); creditType != "" {
		filter.Filters["credit_type"] = creditType
	}

	result, err := h.creditService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
