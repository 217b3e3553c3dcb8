package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	purchasingapp "github.com/retailpos/backend/internal/application/purchasing"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
)

// PurchaseHandler handles supplier purchase endpoints
type PurchaseHandler struct {
	BaseHandler
	purchaseService *purchasingapp.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService *purchasingapp.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// Create records a new supplier purchase
func (h *PurchaseHandler) Create(c *gin.Context) {
	employeeID, err := getEmployeeID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req purchasingapp.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.EmployeeID = employeeID

	resp, err := h.purchaseService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Receive books the purchased goods into branch stock
func (h *PurchaseHandler) Receive(c *gin.Context) {
	employeeID, err := getEmployeeID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	resp, err := h.purchaseService.Receive(c.Request.Context(), uri.ID, employeeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel voids a pending purchase
func (h *PurchaseHandler) Cancel(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	resp, err := h.purchaseService.Cancel(c.Request.Context(), uri.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByID returns a single purchase with its items
func (h *PurchaseHandler) GetByID(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	resp, err := h.purchaseService.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns a paginated purchase list
func (h *PurchaseHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if branchID := c.Query("branch_id"); branchID != "" {
		filter.Filters["branch_id"] = branchID
	}

	result, err := h.purchaseService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListBySupplier returns purchases placed with one supplier
func (h *PurchaseHandler) ListBySupplier(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("supplier_id"))
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.purchaseService.ListBySupplier(c.Request.Context(), supplierID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
