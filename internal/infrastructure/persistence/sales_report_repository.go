package persistence

import (
	"context"
	"time"

	"github.com/retailpos/backend/internal/domain/report"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormSalesReportRepository implements SalesReportRepository with
// aggregate queries over the order and store credit tables
type GormSalesReportRepository struct {
	db *gorm.DB
}

// NewGormSalesReportRepository creates a new GormSalesReportRepository
func NewGormSalesReportRepository(db *gorm.DB) *GormSalesReportRepository {
	return &GormSalesReportRepository{db: db}
}

// Summary aggregates paid orders between from and to
func (r *GormSalesReportRepository) Summary(ctx context.Context, from, to time.Time, branchID *uuid.UUID) (*report.SalesSummary, error) {
	var orderAgg struct {
		OrderCount int64
		GrossSales decimal.Decimal
		CreditUsed decimal.Decimal
	}

	orderQuery := r.db.WithContext(ctx).
		Table("orders").
		Select(`
			COUNT(*) AS order_count,
			COALESCE(SUM(total_amount), 0) AS gross_sales,
			COALESCE(SUM(credit_used), 0) AS credit_used`).
		Where("status = ? AND order_date >= ? AND order_date < ?", "paid", from, to)
	if branchID != nil {
		orderQuery = orderQuery.Where("branch_id = ?", *branchID)
	}
	if err := orderQuery.Scan(&orderAgg).Error; err != nil {
		return nil, err
	}

	var returnAgg struct {
		ReturnedAmount decimal.Decimal
	}
	returnQuery := r.db.WithContext(ctx).
		Table("order_items oi").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Select("COALESCE(SUM(oi.unit_price_deducted * oi.quantity), 0) AS returned_amount").
		Where("oi.status = ? AND oi.created_at >= ? AND oi.created_at < ?", "returned", from, to)
	if branchID != nil {
		returnQuery = returnQuery.Where("o.branch_id = ?", *branchID)
	}
	if err := returnQuery.Scan(&returnAgg).Error; err != nil {
		return nil, err
	}

	// Store credits carry no branch; the issued total is global
	var creditAgg struct {
		CreditIssued decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Table("store_credits").
		Select("COALESCE(SUM(credit_amount), 0) AS credit_issued").
		Where("issued_at >= ? AND issued_at < ?", from, to).
		Scan(&creditAgg).Error; err != nil {
		return nil, err
	}

	summary := &report.SalesSummary{
		From:           from,
		To:             to,
		OrderCount:     orderAgg.OrderCount,
		GrossSales:     orderAgg.GrossSales,
		CreditUsed:     orderAgg.CreditUsed,
		CreditIssued:   creditAgg.CreditIssued,
		ReturnedAmount: returnAgg.ReturnedAmount,
		NetSales:       orderAgg.GrossSales.Sub(returnAgg.ReturnedAmount),
	}
	if summary.OrderCount > 0 {
		summary.AverageOrderVal = summary.GrossSales.
			Div(decimal.NewFromInt(summary.OrderCount)).Round(2)
	}

	return summary, nil
}

// TopProducts ranks products by quantity sold on paid orders
func (r *GormSalesReportRepository) TopProducts(ctx context.Context, from, to time.Time, branchID *uuid.UUID, limit int) ([]report.TopProduct, error) {
	query := r.db.WithContext(ctx).
		Table("order_items oi").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Select(`
			oi.product_id,
			oi.sku,
			oi.product_name,
			SUM(oi.quantity) AS quantity_sold,
			SUM(oi.unit_price_deducted * oi.quantity) AS sales_amount`).
		Where("o.status = ? AND oi.status <> ? AND o.order_date >= ? AND o.order_date < ?",
			"paid", "returned", from, to).
		Group("oi.product_id, oi.sku, oi.product_name").
		Order("quantity_sold DESC").
		Limit(limit)
	if branchID != nil {
		query = query.Where("o.branch_id = ?", *branchID)
	}

	var products []report.TopProduct
	if err := query.Scan(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// DailySeries returns per-day sales figures between from and to
func (r *GormSalesReportRepository) DailySeries(ctx context.Context, from, to time.Time, branchID *uuid.UUID) ([]report.DailySales, error) {
	query := r.db.WithContext(ctx).
		Table("orders").
		Select(`
			DATE_TRUNC('day', order_date) AS date,
			COUNT(*) AS order_count,
			COALESCE(SUM(total_amount), 0) AS sales`).
		Where("status = ? AND order_date >= ? AND order_date < ?", "paid", from, to).
		Group("DATE_TRUNC('day', order_date)").
		Order("date ASC")
	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}

	var series []report.DailySales
	if err := query.Scan(&series).Error; err != nil {
		return nil, err
	}
	return series, nil
}

var _ report.SalesReportRepository = (*GormSalesReportRepository)(nil)
