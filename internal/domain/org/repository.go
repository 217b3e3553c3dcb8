package org

import (
	"context"

	"github.com/retailpos/backend/internal/domain/shared"

	"github.com/google/uuid"
)

// BranchRepository defines the interface for branch persistence
type BranchRepository interface {
	// FindByID finds a branch by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Branch, error)

	// FindByCode finds a branch by its code
	FindByCode(ctx context.Context, code string) (*Branch, error)

	// FindAll finds all branches matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Branch, error)

	// FindActive finds all active branches
	FindActive(ctx context.Context) ([]Branch, error)

	// FindDefault finds the default branch
	FindDefault(ctx context.Context) (*Branch, error)

	// Save creates or updates a branch
	Save(ctx context.Context, branch *Branch) error

	// Delete deletes a branch
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts branches matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByCode checks if a branch with the given code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
