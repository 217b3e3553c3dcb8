package handler

import (
	"github.com/gin-gonic/gin"

	orgapp "github.com/retailpos/backend/internal/application/org"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
)

// BranchHandler handles branch management endpoints
type BranchHandler struct {
	BaseHandler
	branchService *orgapp.BranchService
}

// NewBranchHandler creates a new BranchHandler
func NewBranchHandler(branchService *orgapp.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// Create opens a new branch
func (h *BranchHandler) Create(c *gin.Context) {
	var req orgapp.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.branchService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update changes a branch's details
func (h *BranchHandler) Update(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid branch ID")
		return
	}

	var req orgapp.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.branchService.Update(c.Request.Context(), uri.ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetDefault makes a branch the default one
func (h *BranchHandler) SetDefault(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid branch ID")
		return
	}

	resp, err := h.branchService.SetDefault(c.Request.Context(), uri.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Activate re-enables a branch
func (h *BranchHandler) Activate(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid branch ID")
		return
	}

	resp, err := h.branchService.Activate(c.Request.Context(), uri.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Deactivate closes a branch
func (h *BranchHandler) Deactivate(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid branch ID")
		return
	}

	resp, err := h.branchService.Deactivate(c.Request.Context(), uri.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByID returns a single branch
func (h *BranchHandler) GetByID(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid branch ID")
		return
	}

	resp, err := h.branchService.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns a paginated branch list
func (h *BranchHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.branchService.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListActive returns all active branches
func (h *BranchHandler) ListActive(c *gin.Context) {
	branches, err := h.branchService.ListActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, branches)
}
