package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/retailpos/backend/internal/domain/purchasing"
	"github.com/retailpos/backend/internal/domain/shared"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID retrieves a purchase with its items
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchasing.Purchase, error) {
	var purchase purchasing.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&purchase, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindByPurchaseNumber retrieves a purchase by its number with its items
func (r *GormPurchaseRepository) FindByPurchaseNumber(ctx context.Context, purchaseNumber string) (*purchasing.Purchase, error) {
	var purchase purchasing.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&purchase, "purchase_number = ?", purchaseNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindAll retrieves purchases with pagination (items not loaded)
func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[purchasing.Purchase], error) {
	return r.findPaginated(ctx, r.db.WithContext(ctx).Model(&purchasing.Purchase{}), filter)
}

// FindBySupplier retrieves purchases for a supplier
func (r *GormPurchaseRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) (*shared.Paginated[purchasing.Purchase], error) {
	query := r.db.WithContext(ctx).Model(&purchasing.Purchase{}).
		Where("supplier_id = ?", supplierID)
	return r.findPaginated(ctx, query, filter)
}

// FindByBranch retrieves purchases for a branch
func (r *GormPurchaseRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) (*shared.Paginated[purchasing.Purchase], error) {
	query := r.db.WithContext(ctx).Model(&purchasing.Purchase{}).
		Where("branch_id = ?", branchID)
	return r.findPaginated(ctx, query, filter)
}

// Save persists a purchase and its items
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *purchasing.Purchase) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(purchase).Error
}

// CountByStatus counts purchases in a given status
func (r *GormPurchaseRepository) CountByStatus(ctx context.Context, status purchasing.PurchaseStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&purchasing.Purchase{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GeneratePurchaseNumber generates the next purchase number.
// Format: PUR-YYYY-NNNNN (e.g. PUR-2026-00007).
func (r *GormPurchaseRepository) GeneratePurchaseNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("PUR-%d-", year)

	var last purchasing.Purchase
	err := r.db.WithContext(ctx).
		Model(&purchasing.Purchase{}).
		Where("purchase_number LIKE ?", prefix+"%").
		Order("purchase_number DESC").
		First(&last).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && last.PurchaseNumber != "" {
		parts := strings.Split(last.PurchaseNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

func (r *GormPurchaseRepository) findPaginated(ctx context.Context, query *gorm.DB, filter shared.Filter) (*shared.Paginated[purchasing.Purchase], error) {
	query = r.applyFilters(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var purchases []purchasing.Purchase
	listQuery := applyPagination(query, filter)
	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		listQuery = listQuery.Order(filter.OrderBy + " " + orderDir)
	} else {
		listQuery = listQuery.Order("ordered_at DESC")
	}

	if err := listQuery.Find(&purchases).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(purchases, total, filter.Page, filter.PageSize)
	return &result, nil
}

func (r *GormPurchaseRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "purchase_number")
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "branch_id":
			query = query.Where("branch_id = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		}
	}
	return query
}

var _ purchasing.PurchaseRepository = (*GormPurchaseRepository)(nil)
