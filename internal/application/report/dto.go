package report

import (
	"time"

	"github.com/retailpos/backend/internal/domain/report"

	"github.com/google/uuid"
)

// DashboardQuery scopes the sales dashboard to a period and branch
type DashboardQuery struct {
	From     time.Time
	To       time.Time
	BranchID *uuid.UUID
	TopLimit int
}

// DashboardResponse is the full sales dashboard payload
type DashboardResponse struct {
	Summary     report.SalesSummary `json:"summary"`
	TopProducts []report.TopProduct `json:"top_products"`
	DailySales  []report.DailySales `json:"daily_sales"`
	GeneratedAt time.Time           `json:"generated_at"`
}
