package persistence

import (
	"context"
	"errors"

	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockMovementRepository implements StockMovementRepository using
// GORM. Movements are append-only; updates and deletes are not exposed.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Save appends a movement record
func (r *GormStockMovementRepository) Save(ctx context.Context, movement *inventory.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// FindByID finds a movement by its ID
func (r *GormStockMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockMovement, error) {
	var movement inventory.StockMovement
	if err := r.db.WithContext(ctx).First(&movement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &movement, nil
}

// FindByBranch finds movements for a branch
func (r *GormStockMovementRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	query := r.applyFilters(
		r.db.WithContext(ctx).Model(&inventory.StockMovement{}).
			Where("branch_id = ?", branchID),
		filter,
	)
	query = applyListFilter(query, filter)

	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindByProduct finds movements for a product at a branch
func (r *GormStockMovementRepository) FindByProduct(ctx context.Context, branchID, productID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	query := r.db.WithContext(ctx).Model(&inventory.StockMovement{}).
		Where("branch_id = ? AND product_id = ?", branchID, productID)
	query = applyListFilter(query, filter)

	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindByBatchID finds all movements that share a grouping token
func (r *GormStockMovementRepository) FindByBatchID(ctx context.Context, batchID string) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	if err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("created_at ASC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// Count counts movements for a branch
func (r *GormStockMovementRepository) Count(ctx context.Context, branchID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilters(
		r.db.WithContext(ctx).Model(&inventory.StockMovement{}).
			Where("branch_id = ?", branchID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormStockMovementRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "movement_type":
			query = query.Where("movement_type = ?", value)
		case "batch_id":
			query = query.Where("batch_id = ?", value)
		case "from":
			query = query.Where("created_at >= ?", value)
		case "to":
			query = query.Where("created_at < ?", value)
		}
	}
	return query
}

var _ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
