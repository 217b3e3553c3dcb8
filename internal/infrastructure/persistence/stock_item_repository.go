package persistence

import (
	"context"
	"errors"

	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockItemRepository implements StockItemRepository using GORM
type GormStockItemRepository struct {
	db *gorm.DB
}

// NewGormStockItemRepository creates a new GormStockItemRepository
func NewGormStockItemRepository(db *gorm.DB) *GormStockItemRepository {
	return &GormStockItemRepository{db: db}
}

// FindByID finds a stock item by its ID
func (r *GormStockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockItem, error) {
	var item inventory.StockItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByBranchAndProduct finds the stock record for a branch-product pair
func (r *GormStockItemRepository) FindByBranchAndProduct(ctx context.Context, branchID, productID uuid.UUID) (*inventory.StockItem, error) {
	var item inventory.StockItem
	if err := r.db.WithContext(ctx).
		Where("branch_id = ? AND product_id = ?", branchID, productID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByBranch finds all stock records for a branch
func (r *GormStockItemRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]inventory.StockItem, error) {
	var items []inventory.StockItem
	query := r.applyFilters(
		r.db.WithContext(ctx).Model(&inventory.StockItem{}).
			Where("branch_id = ?", branchID),
		filter,
	)
	query = applyListFilter(query, filter)

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByProduct finds stock records for a product across branches
func (r *GormStockItemRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.StockItem, error) {
	var items []inventory.StockItem
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindBelowReorderLevel finds branch stock at or below its reorder threshold
func (r *GormStockItemRepository) FindBelowReorderLevel(ctx context.Context, branchID uuid.UUID) ([]inventory.StockItem, error) {
	var items []inventory.StockItem
	if err := r.db.WithContext(ctx).
		Where("branch_id = ? AND reorder_level > 0 AND quantity <= reorder_level", branchID).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates a stock item
func (r *GormStockItemRepository) Save(ctx context.Context, item *inventory.StockItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// SaveWithLock saves using optimistic locking on the version column.
// Records not yet persisted are inserted; the unique branch-product
// index rejects concurrent first inserts.
func (r *GormStockItemRepository) SaveWithLock(ctx context.Context, item *inventory.StockItem) error {
	result := r.db.WithContext(ctx).
		Model(item).
		Where("id = ? AND version = ?", item.ID, item.Version-1).
		Updates(map[string]interface{}{
			"quantity":      item.Quantity,
			"reorder_level": item.ReorderLevel,
			"version":       item.Version,
			"updated_at":    item.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&inventory.StockItem{}).
			Where("id = ?", item.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return shared.ErrConcurrencyConflict
		}
		return r.db.WithContext(ctx).Create(item).Error
	}
	return nil
}

// Count counts stock items for a branch
func (r *GormStockItemRepository) Count(ctx context.Context, branchID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilters(
		r.db.WithContext(ctx).Model(&inventory.StockItem{}).
			Where("branch_id = ?", branchID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormStockItemRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "below_reorder":
			if value == true {
				query = query.Where("reorder_level > 0 AND quantity <= reorder_level")
			}
		case "has_stock":
			if value == true {
				query = query.Where("quantity > 0")
			}
		}
	}
	return query
}

var _ inventory.StockItemRepository = (*GormStockItemRepository)(nil)
