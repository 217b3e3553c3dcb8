package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityapp "github.com/retailpos/backend/internal/application/identity"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
)

// EmployeeHandler handles employee management endpoints
type EmployeeHandler struct {
	BaseHandler
	employeeService *identityapp.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(employeeService *identityapp.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// Create registers a new employee
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req identityapp.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.employeeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update changes an employee's details
func (h *EmployeeHandler) Update(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	var req identityapp.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.employeeService.Update(c.Request.Context(), uri.ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AssignRoleRequest carries the role to assign to an employee
type AssignRoleRequest struct {
	RoleID uuid.UUID `json:"role_id" binding:"required"`
}

// AssignRole changes an employee's role
func (h *EmployeeHandler) AssignRole(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.employeeService.AssignRole(c.Request.Context(), uri.ID, req.RoleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// TransferBranchRequest carries the destination branch for a transfer
type TransferBranchRequest struct {
	BranchID uuid.UUID `json:"branch_id" binding:"required"`
}

// TransferBranch moves an employee to another branch
func (h *EmployeeHandler) TransferBranch(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	var req TransferBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.employeeService.TransferBranch(c.Request.Context(), uri.ID, req.BranchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Activate re-enables a deactivated employee
func (h *EmployeeHandler) Activate(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	resp, err := h.employeeService.Activate(c.Request.Context(), uri.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Deactivate disables an employee account
func (h *EmployeeHandler) Deactivate(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	resp, err := h.employeeService.Deactivate(c.Request.Context(), uri.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByID returns a single employee
func (h *EmployeeHandler) GetByID(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	resp, err := h.employeeService.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns a paginated employee list
func (h *EmployeeHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.employeeService.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListByBranch returns the employees of one branch
func (h *EmployeeHandler) ListByBranch(c *gin.Context) {
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

	employees, err := h.employeeService.ListByBranch(c.Request.Context(), branchID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employees)
}
