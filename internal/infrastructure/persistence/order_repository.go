package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its items by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByOrderNumber finds an order with its items by order number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*trade.Order, error) {
	var order trade.Order
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&order, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds orders matching the filter (items not loaded)
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	var orders []trade.Order
	query := r.applyFilters(r.db.WithContext(ctx).Model(&trade.Order{}), filter)
	query = applyPagination(query, filter)
	query = r.applyOrdering(query, filter)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByBranch finds orders for a branch (items not loaded)
func (r *GormOrderRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]trade.Order, error) {
	var orders []trade.Order
	query := r.applyFilters(
		r.db.WithContext(ctx).Model(&trade.Order{}).
			Where("branch_id = ?", branchID),
		filter,
	)
	query = applyPagination(query, filter)
	query = r.applyOrdering(query, filter)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByDateRange finds orders placed within [from, to)
func (r *GormOrderRepository) FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]trade.Order, error) {
	var orders []trade.Order
	query := r.applyFilters(
		r.db.WithContext(ctx).Model(&trade.Order{}).
			Where("order_date >= ? AND order_date < ?", from, to),
		filter,
	)
	query = applyPagination(query, filter)
	query = r.applyOrdering(query, filter)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save persists the order and all of its items
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
}

// AppendItems persists newly appended item rows without rewriting the
// existing rows of the order. Original sale rows stay untouched.
func (r *GormOrderRepository) AppendItems(ctx context.Context, orderID uuid.UUID, items []trade.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for idx := range items {
		items[idx].OrderID = orderID
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilters(r.db.WithContext(ctx).Model(&trade.Order{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts orders in a given status
func (r *GormOrderRepository) CountByStatus(ctx context.Context, status trade.OrderStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&trade.Order{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateOrderNumber generates the next sequential order number.
// Format: ORD-YYYY-NNNNN (e.g. ORD-2026-00042).
func (r *GormOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("ORD-%d-", year)

	var lastOrder trade.Order
	err := r.db.WithContext(ctx).
		Model(&trade.Order{}).
		Where("order_number LIKE ?", prefix+"%").
		Order("order_number DESC").
		First(&lastOrder).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastOrder.OrderNumber != "" {
		parts := strings.Split(lastOrder.OrderNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

func (r *GormOrderRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "order_number", "customer_name")
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "branch_id":
			query = query.Where("branch_id = ?", value)
		case "employee_id":
			query = query.Where("employee_id = ?", value)
		case "date_from":
			query = query.Where("order_date >= ?", value)
		case "date_to":
			query = query.Where("order_date < ?", value)
		}
	}
	return query
}

func (r *GormOrderRepository) applyOrdering(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		return query.Order(filter.OrderBy + " " + orderDir)
	}
	return query.Order("order_date DESC")
}

var _ trade.OrderRepository = (*GormOrderRepository)(nil)
