package org

import (
	"context"

	"github.com/retailpos/backend/internal/domain/org"
	"github.com/retailpos/backend/internal/domain/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BranchService handles branch management operations
type BranchService struct {
	branchRepo org.BranchRepository
	logger     *zap.Logger
}

// NewBranchService creates a new BranchService
func NewBranchService(branchRepo org.BranchRepository, logger *zap.Logger) *BranchService {
	return &BranchService{branchRepo: branchRepo, logger: logger}
}

// Create opens a new branch
func (s *BranchService) Create(ctx context.Context, req CreateBranchRequest) (*BranchResponse, error) {
	exists, err := s.branchRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("BRANCH_EXISTS", "A branch with this code already exists")
	}

	branch, err := org.NewBranch(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	branch.Address = req.Address
	branch.City = req.City
	branch.Phone = req.Phone
	branch.Email = req.Email

	// First branch becomes the default
	count, err := s.branchRepo.Count(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	if count == 0 {
		branch.MarkDefault()
	}

	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return nil, err
	}

	s.logger.Info("Branch created",
		zap.String("branch_id", branch.ID.String()),
		zap.String("code", branch.Code))

	response := ToBranchResponse(branch)
	return &response, nil
}

// Update changes a branch's details
func (s *BranchService) Update(ctx context.Context, branchID uuid.UUID, req UpdateBranchRequest) (*BranchResponse, error) {
	branch, err := s.branchRepo.FindByID(ctx, branchID)
	if err != nil {
		return nil, err
	}

	if err := branch.Update(req.Name, req.Address, req.City, req.Phone, req.Email); err != nil {
		return nil, err
	}
	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return nil, err
	}

	response := ToBranchResponse(branch)
	return &response, nil
}

// SetDefault marks a branch as the default branch. The previous
// default is cleared in the same call.
func (s *BranchService) SetDefault(ctx context.Context, branchID uuid.UUID) (*BranchResponse, error) {
	branch, err := s.branchRepo.FindByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if !branch.IsActive() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot make an inactive branch the default")
	}

	current, err := s.branchRepo.FindDefault(ctx)
	if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}
	if current != nil && current.ID != branch.ID {
		current.IsDefault = false
		if err := s.branchRepo.Save(ctx, current); err != nil {
			return nil, err
		}
	}

	branch.MarkDefault()
	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return nil, err
	}

	s.logger.Info("Default branch changed", zap.String("branch_id", branchID.String()))

	response := ToBranchResponse(branch)
	return &response, nil
}

// Activate reopens a branch
func (s *BranchService) Activate(ctx context.Context, branchID uuid.UUID) (*BranchResponse, error) {
	branch, err := s.branchRepo.FindByID(ctx, branchID)
	if err != nil {
		return nil, err
	}

	branch.Activate()
	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return nil, err
	}

	response := ToBranchResponse(branch)
	return &response, nil
}

// Deactivate closes a branch
func (s *BranchService) Deactivate(ctx context.Context, branchID uuid.UUID) (*BranchResponse, error) {
	branch, err := s.branchRepo.FindByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if branch.IsDefault {
		return nil, shared.NewDomainError("DEFAULT_BRANCH", "The default branch cannot be deactivated")
	}

	branch.Deactivate()
	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return nil, err
	}

	s.logger.Info("Branch deactivated", zap.String("branch_id", branchID.String()))

	response := ToBranchResponse(branch)
	return &response, nil
}

// GetByID retrieves a branch by ID
func (s *BranchService) GetByID(ctx context.Context, branchID uuid.UUID) (*BranchResponse, error) {
	branch, err := s.branchRepo.FindByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	response := ToBranchResponse(branch)
	return &response, nil
}

// List retrieves branches matching a filter
func (s *BranchService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[BranchResponse], error) {
	branches, err := s.branchRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.branchRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]BranchResponse, 0, len(branches))
	for idx := range branches {
		responses = append(responses, ToBranchResponse(&branches[idx]))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListActive retrieves all active branches
func (s *BranchService) ListActive(ctx context.Context) ([]BranchResponse, error) {
	branches, err := s.branchRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]BranchResponse, 0, len(branches))
	for idx := range branches {
		responses = append(responses, ToBranchResponse(&branches[idx]))
	}
	return responses, nil
}
