package org

import (
	"time"

	"github.com/retailpos/backend/internal/domain/org"

	"github.com/google/uuid"
)

// CreateBranchRequest is the request to open a new branch
type CreateBranchRequest struct {
	Code    string `json:"code" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// UpdateBranchRequest is the request to update a branch
type UpdateBranchRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// BranchResponse is the full branch representation
type BranchResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Status    string    `json:"status"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToBranchResponse converts a domain branch to its response form
func ToBranchResponse(b *org.Branch) BranchResponse {
	return BranchResponse{
		ID:        b.ID,
		Code:      b.Code,
		Name:      b.Name,
		Address:   b.Address,
		City:      b.City,
		Phone:     b.Phone,
		Email:     b.Email,
		Status:    string(b.Status),
		IsDefault: b.IsDefault,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
