package persistence

import (
	"context"
	"errors"

	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/shared"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStoreCreditRepository implements StoreCreditRepository using GORM
type GormStoreCreditRepository struct {
	db *gorm.DB
}

// NewGormStoreCreditRepository creates a new GormStoreCreditRepository
func NewGormStoreCreditRepository(db *gorm.DB) *GormStoreCreditRepository {
	return &GormStoreCreditRepository{db: db}
}

// FindByID finds a store credit by its ID
func (r *GormStoreCreditRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.StoreCredit, error) {
	var credit finance.StoreCredit
	if err := r.db.WithContext(ctx).First(&credit, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &credit, nil
}

// FindByOrder finds credits issued against an order
func (r *GormStoreCreditRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]finance.StoreCredit, error) {
	var credits []finance.StoreCredit
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("issued_at ASC").
		Find(&credits).Error; err != nil {
		return nil, err
	}
	return credits, nil
}

// FindByCustomerName finds credits labelled with a customer name
func (r *GormStoreCreditRepository) FindByCustomerName(ctx context.Context, customerName string, filter shared.Filter) ([]finance.StoreCredit, error) {
	var credits []finance.StoreCredit
	query := r.db.WithContext(ctx).Model(&finance.StoreCredit{}).
		Where("customer_name = ?", customerName)
	query = applyListFilter(query, filter)

	if err := query.Find(&credits).Error; err != nil {
		return nil, err
	}
	return credits, nil
}

// FindAll finds credits matching the filter
func (r *GormStoreCreditRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.StoreCredit, error) {
	var credits []finance.StoreCredit
	query := r.applyFilters(r.db.WithContext(ctx).Model(&finance.StoreCredit{}), filter)
	query = applyListFilter(query, filter)

	if err := query.Find(&credits).Error; err != nil {
		return nil, err
	}
	return credits, nil
}

// FindActive finds redeemable credits
func (r *GormStoreCreditRepository) FindActive(ctx context.Context, filter shared.Filter) ([]finance.StoreCredit, error) {
	var credits []finance.StoreCredit
	query := r.db.WithContext(ctx).Model(&finance.StoreCredit{}).
		Where("status = ?", finance.CreditStatusActive)
	query = applyListFilter(query, filter)

	if err := query.Find(&credits).Error; err != nil {
		return nil, err
	}
	return credits, nil
}

// Save creates or updates a store credit
func (r *GormStoreCreditRepository) Save(ctx context.Context, credit *finance.StoreCredit) error {
	return r.db.WithContext(ctx).Save(credit).Error
}

// Count counts credits matching the filter
func (r *GormStoreCreditRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilters(r.db.WithContext(ctx).Model(&finance.StoreCredit{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormStoreCreditRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "customer_name", "description")
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "credit_type":
			query = query.Where("credit_type = ?", value)
		case "order_id":
			query = query.Where("order_id = ?", value)
		}
	}
	return query
}

var _ finance.StoreCreditRepository = (*GormStoreCreditRepository)(nil)
