package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesSummary aggregates order totals over a period
type SalesSummary struct {
	From            time.Time       `json:"from"`
	To              time.Time       `json:"to"`
	OrderCount      int64           `json:"order_count"`
	GrossSales      decimal.Decimal `json:"gross_sales"`
	CreditUsed      decimal.Decimal `json:"credit_used"`
	CreditIssued    decimal.Decimal `json:"credit_issued"`
	ReturnedAmount  decimal.Decimal `json:"returned_amount"`
	NetSales        decimal.Decimal `json:"net_sales"`
	AverageOrderVal decimal.Decimal `json:"average_order_value"`
}

// TopProduct is a product ranked by quantity sold over a period
type TopProduct struct {
	ProductID    uuid.UUID       `json:"product_id"`
	SKU          string          `json:"sku"`
	ProductName  string          `json:"product_name"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	SalesAmount  decimal.Decimal `json:"sales_amount"`
}

// DailySales is one point of a per-day sales series
type DailySales struct {
	Date       time.Time       `json:"date"`
	OrderCount int64           `json:"order_count"`
	Sales      decimal.Decimal `json:"sales"`
}

// SalesReportRepository defines read-model queries backing the dashboard.
// Implementations query order and store credit tables directly.
type SalesReportRepository interface {
	// Summary aggregates paid orders between from and to, optionally
	// filtered by branch (nil branchID means all branches)
	Summary(ctx context.Context, from, to time.Time, branchID *uuid.UUID) (*SalesSummary, error)

	// TopProducts ranks products by quantity sold on paid orders
	TopProducts(ctx context.Context, from, to time.Time, branchID *uuid.UUID, limit int) ([]TopProduct, error)

	// DailySeries returns per-day sales figures between from and to
	DailySeries(ctx context.Context, from, to time.Time, branchID *uuid.UUID) ([]DailySales, error)
}
