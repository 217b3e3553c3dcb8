package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	inventoryapp "github.com/retailpos/backend/internal/application/inventory"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
)

// InventoryHandler handles stock management endpoints
type InventoryHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(stockService *inventoryapp.StockService) *InventoryHandler {
	return &InventoryHandler{stockService: stockService}
}

// Intake records incoming stock at a branch
func (h *InventoryHandler) Intake(c *gin.Context) {
	employeeID, err := getEmployeeID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req inventoryapp.IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.EmployeeID = employeeID

	resp, err := h.stockService.Intake(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Transfer moves stock between two branches
func (h *InventoryHandler) Transfer(c *gin.Context) {
	employeeID, err := getEmployeeID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req inventoryapp.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.EmployeeID = employeeID

	resp, err := h.stockService.Transfer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// WriteOffDamage removes damaged stock
func (h *InventoryHandler) WriteOffDamage(c *gin.Context) {
	employeeID, err := getEmployeeID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req inventoryapp.WriteOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.EmployeeID = employeeID

	resp, err := h.stockService.WriteOffDamage(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// WriteOffStockOut removes stock lost outside of sales
func (h *InventoryHandler) WriteOffStockOut(c *gin.Context) {
	employeeID, err := getEmployeeID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req inventoryapp.WriteOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.EmployeeID = employeeID

	resp, err := h.stockService.WriteOffStockOut(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Adjust corrects on-hand stock to a counted quantity
func (h *InventoryHandler) Adjust(c *gin.Context) {
	employeeID, err := getEmployeeID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req inventoryapp.AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.EmployeeID = employeeID

	resp, err := h.stockService.Adjust(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetReorderLevelRequest carries the reorder threshold for a stock item
type SetReorderLevelRequest struct {
	BranchID     uuid.UUID       `json:"branch_id" binding:"required"`
	ProductID    uuid.UUID       `json:"product_id" binding:"required"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
}

// SetReorderLevel sets the low-stock threshold for a branch product
func (h *InventoryHandler) SetReorderLevel(c *gin.Context) {
	var req SetReorderLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.stockService.SetReorderLevel(c.Request.Context(), req.BranchID, req.ProductID, req.ReorderLevel)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetBranchStock returns the on-hand stock of one branch
func (h *InventoryHandler) GetBranchStock(c *gin.Context) {
	branchID, err := uuid.Parse(c.Param("branch_id"))
	if err != nil {
		h.BadRequest(c, "Invalid branch ID")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	if productID := c.Query("product_id"); productID != "" {
		filter.Filters["product_id"] = productID
	}

	items, total, err := h.stockService.GetBranchStock(c.Request.Context(), branchID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// GetProductStock returns a product's stock across all branches
func (h *InventoryHandler) GetProductStock(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	items, err := h.stockService.GetProductStock(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// GetLowStock returns branch items at or below their reorder level
func (h *InventoryHandler) GetLowStock(c *gin.Context) {
	branchID, err := uuid.Parse(c.Param("branch_id"))
	if err != nil {
		h.BadRequest(c, "Invalid branch ID")
		return
	}

	items, err := h.stockService.GetLowStock(c.Request.Context(), branchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// GetMovements returns the audit trail of stock changes at a branch
func (h *InventoryHandler) GetMovements(c *gin.Context) {
	branchID, err := uuid.Parse(c.Param("branch_id"))
	if err != nil {
		h.BadRequest(c, "Invalid branch ID")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	if productID := c.Query("product_id"); productID != "" {
		filter.Filters["product_id"] = productID
	}
	if movementType := c.Query("movement_type"); movementType != "" {
		filter.Filters["movement_type"] = movementType
	}

	movements, total, err := h.stockService.GetMovements(c.Request.Context(), branchID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, movements, total, filter.Page, filter.PageSize)
}
