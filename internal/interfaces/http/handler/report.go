package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reportapp "github.com/retailpos/backend/internal/application/report"
)

// ReportHandler handles sales dashboard endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) bindDashboardQuery(c *gin.Context) (*reportapp.DashboardQuery, bool) {
	fromStr := c.Query("from")
	toStr := c.Query("to")

	// Default to the trailing 30 days when no range is given
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	var err error
	if fromStr != "" {
		from, err = time.Parse("2006-01-02", fromStr)
		if err != nil {
			h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
			return nil, false
		}
	}
	if toStr != "" {
		to, err = time.Parse("2006-01-02", toStr)
		if err != nil {
			h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
			return nil, false
		}
		// Make the range inclusive of the end day
		to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	query := &reportapp.DashboardQuery{From: from, To: to}

	if branchIDStr := c.Query("branch_id"); branchIDStr != "" {
		branchID, err := uuid.Parse(branchIDStr)
		if err != nil {
			h.BadRequest(c, "Invalid branch ID")
			return nil, false
		}
		query.BranchID = &branchID
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			h.BadRequest(c, "Invalid limit")
			return nil, false
		}
		query.TopLimit = limit
	}

	return query, true
}

// Dashboard returns the sales summary, top products and daily series
// for a period
func (h *ReportHandler) Dashboard(c *gin.Context) {
	query, ok := h.bindDashboardQuery(c)
	if !ok {
		return
	}

	resp, err := h.reportService.Dashboard(c.Request.Context(), *query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Summary returns the sales summary alone, bypassing the cache
func (h *ReportHandler) Summary(c *gin.Context) {
	query, ok := h.bindDashboardQuery(c)
	if !ok {
		return
	}

	summary, err := h.reportService.Summary(c.Request.Context(), query.From, query.To, query.BranchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
