package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/shared"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEmployeeRepository implements EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// FindByID finds an employee by its ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Employee, error) {
	var employee identity.Employee
	if err := r.db.WithContext(ctx).First(&employee, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// FindByUsername finds an employee by username
func (r *GormEmployeeRepository) FindByUsername(ctx context.Context, username string) (*identity.Employee, error) {
	var employee identity.Employee
	if err := r.db.WithContext(ctx).
		First(&employee, "username = ?", strings.ToLower(username)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// FindByCode finds an employee by its code
func (r *GormEmployeeRepository) FindByCode(ctx context.Context, code string) (*identity.Employee, error) {
	var employee identity.Employee
	if err := r.db.WithContext(ctx).
		First(&employee, "code = ?", strings.ToUpper(code)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// FindAll finds all employees matching the filter
func (r *GormEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Employee, error) {
	var employees []identity.Employee
	query := r.applyFilters(r.db.WithContext(ctx).Model(&identity.Employee{}), filter)
	query = applyListFilter(query, filter)

	if err := query.Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// FindByBranch finds employees assigned to a branch
func (r *GormEmployeeRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]identity.Employee, error) {
	var employees []identity.Employee
	query := r.db.WithContext(ctx).Model(&identity.Employee{}).
		Where("branch_id = ?", branchID)
	query = applySearch(query, filter.Search, "code", "name", "username")
	query = applyListFilter(query, filter)

	if err := query.Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// Save creates or updates an employee
func (r *GormEmployeeRepository) Save(ctx context.Context, employee *identity.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

// Delete deletes an employee
func (r *GormEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&identity.Employee{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts employees matching the filter
func (r *GormEmployeeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilters(r.db.WithContext(ctx).Model(&identity.Employee{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByUsername checks if an employee with the given username exists
func (r *GormEmployeeRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.Employee{}).
		Where("username = ?", strings.ToLower(username)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormEmployeeRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "code", "name", "username")
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "branch_id":
			query = query.Where("branch_id = ?", value)
		case "role_id":
			query = query.Where("role_id = ?", value)
		}
	}
	return query
}

var _ identity.EmployeeRepository = (*GormEmployeeRepository)(nil)
