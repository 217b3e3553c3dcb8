package catalog

import (
	"time"

	"github.com/retailpos/backend/internal/domain/catalog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest is the request to create a product category
type CreateCategoryRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateCategoryRequest is the request to update a category
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CategoryResponse is the full category representation
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a domain category to its response form
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		Description: c.Description,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CreateProductRequest is the request to add a product to the catalog
type CreateProductRequest struct {
	SKU        string          `json:"sku" binding:"required"`
	Name       string          `json:"name" binding:"required"`
	CategoryID *uuid.UUID      `json:"category_id"`
	UnitPrice  decimal.Decimal `json:"unit_price" binding:"required"`
	CostPrice  decimal.Decimal `json:"cost_price"`
	Barcode    string          `json:"barcode"`
	ImageURL   string          `json:"image_url"`
	Unit       string          `json:"unit"`
}

// UpdateProductRequest is the request to update product details
type UpdateProductRequest struct {
	Name     string `json:"name" binding:"required"`
	Barcode  string `json:"barcode"`
	ImageURL string `json:"image_url"`
	Unit     string `json:"unit"`
}

// ChangePriceRequest is the request to change a product's sell price
type ChangePriceRequest struct {
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// ProductResponse is the full product representation
type ProductResponse struct {
	ID         uuid.UUID       `json:"id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	CategoryID *uuid.UUID      `json:"category_id,omitempty"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	CostPrice  decimal.Decimal `json:"cost_price"`
	Barcode    string          `json:"barcode,omitempty"`
	ImageURL   string          `json:"image_url,omitempty"`
	Unit       string          `json:"unit"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain product to its response form
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:         p.ID,
		SKU:        p.SKU,
		Name:       p.Name,
		CategoryID: p.CategoryID,
		UnitPrice:  p.UnitPrice,
		CostPrice:  p.CostPrice,
		Barcode:    p.Barcode,
		ImageURL:   p.ImageURL,
		Unit:       p.Unit,
		Status:     string(p.Status),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
