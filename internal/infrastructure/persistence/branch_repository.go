package persistence

import (
	"context"
	"errors"

	"github.com/retailpos/backend/internal/domain/org"
	"github.com/retailpos/backend/internal/domain/shared"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBranchRepository implements BranchRepository using GORM
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// FindByID finds a branch by its ID
func (r *GormBranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*org.Branch, error) {
	var branch org.Branch
	if err := r.db.WithContext(ctx).First(&branch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &branch, nil
}

// FindByCode finds a branch by its code
func (r *GormBranchRepository) FindByCode(ctx context.Context, code string) (*org.Branch, error) {
	var branch org.Branch
	if err := r.db.WithContext(ctx).First(&branch, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &branch, nil
}

// FindAll finds all branches matching the filter
func (r *GormBranchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]org.Branch, error) {
	var branches []org.Branch
	query := r.db.WithContext(ctx).Model(&org.Branch{})
	query = applySearch(query, filter.Search, "code", "name", "city")
	query = r.applyFilters(query, filter)
	query = applyListFilter(query, filter)

	if err := query.Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

// FindActive finds all active branches
func (r *GormBranchRepository) FindActive(ctx context.Context) ([]org.Branch, error) {
	var branches []org.Branch
	if err := r.db.WithContext(ctx).
		Where("status = ?", org.BranchStatusActive).
		Order("code ASC").
		Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

// FindDefault finds the default branch
func (r *GormBranchRepository) FindDefault(ctx context.Context) (*org.Branch, error) {
	var branch org.Branch
	if err := r.db.WithContext(ctx).First(&branch, "is_default = true").Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &branch, nil
}

// Save creates or updates a branch
func (r *GormBranchRepository) Save(ctx context.Context, branch *org.Branch) error {
	return r.db.WithContext(ctx).Save(branch).Error
}

// Delete deletes a branch
func (r *GormBranchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&org.Branch{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts branches matching the filter
func (r *GormBranchRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&org.Branch{})
	query = applySearch(query, filter.Search, "code", "name", "city")
	query = r.applyFilters(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a branch with the given code exists
func (r *GormBranchRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&org.Branch{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormBranchRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "city":
			query = query.Where("city = ?", value)
		}
	}
	return query
}

var _ org.BranchRepository = (*GormBranchRepository)(nil)
