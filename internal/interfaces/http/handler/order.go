package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	tradeapp "github.com/retailpos/backend/internal/application/trade"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
)

// OrderHandler handles sales order endpoints, including returns
type OrderHandler struct {
	BaseHandler
	orderService  *tradeapp.OrderService
	returnService *tradeapp.ReturnService
	orderRepo     trade.OrderRepository
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *tradeapp.OrderService, returnService *tradeapp.ReturnService, orderRepo trade.OrderRepository) *OrderHandler {
	return &OrderHandler{
		orderService:  orderService,
		returnService: returnService,
		orderRepo:     orderRepo,
	}
}

// Create places a new order
func (h *OrderHandler) Create(c *gin.Context) {
	employeeID, err := getEmployeeID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req tradeapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.EmployeeID = employeeID

	resp, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// PayRequest carries an optional store credit to redeem at payment
type PayRequest struct {
	CreditID *uuid.UUID `json:"credit_id"`
}

// Pay settles a pending order, deducting stock and consuming any credit
func (h *OrderHandler) Pay(c *gin.Context) {
	employeeID, err := getEmployeeID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.Pay(c.Request.Context(), uri.ID, req.CreditID, employeeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel voids a pending order
func (h *OrderHandler) Cancel(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.orderService.Cancel(c.Request.Context(), uri.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByID returns a single order with its items
func (h *OrderHandler) GetByID(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.orderService.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByOrderNumber looks up an order by its number
func (h *OrderHandler) GetByOrderNumber(c *gin.Context) {
	orderNumber := c.Param("order_number")
	if orderNumber == "" {
		h.BadRequest(c, "Order number is required")
		return
	}

	resp, err := h.orderService.GetByOrderNumber(c.Request.Context(), orderNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns a paginated order list
func (h *OrderHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.Normalize()

	filter := tradeapp.OrderListFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}

	if branchIDStr := c.Query("branch_id"); branchIDStr != "" {
		branchID, err := uuid.Parse(branchIDStr)
		if err != nil {
			h.BadRequest(c, "Invalid branch ID")
			return
		}
		filter.BranchID = &branchID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := trade.OrderStatus(statusStr)
		filter.Status = &status
	}
	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		filter.StartDate = &from
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		filter.EndDate = &to
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// ProcessReturn records returned items against a paid order and issues
// a single store credit covering them
func (h *OrderHandler) ProcessReturn(c *gin.Context) {
	employeeID, err := getEmployeeID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req tradeapp.ProcessReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.EmployeeID = employeeID

	resp, err := h.returnService.ProcessReturn(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListReturns returns the return rows recorded against an order
func (h *OrderHandler) ListReturns(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	returns, err := h.returnService.ListReturns(c.Request.Context(), h.orderRepo, uri.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, returns)
}
