package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/adebold/Commerce-Studio-sub022/internal/domain/catalog"
)

// VariantResponse is a product variant as served by the variants API
type VariantResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	SKU       string          `json:"sku"`
	Color     string          `json:"color,omitempty"`
	Size      string          `json:"size,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// CreateVariantRequest carries a new variant's fields
type CreateVariantRequest struct {
	SKU   string          `json:"sku" binding:"required,min=3,max=64"`
	Price decimal.Decimal `json:"price" binding:"required"`
	Color string          `json:"color,omitempty" binding:"omitempty,max=50"`
	Size  string          `json:"size,omitempty" binding:"omitempty,max=50"`
	Stock int             `json:"stock,omitempty" binding:"omitempty,gte=0"`
}

// toVariantResponse maps a variant into the response shape
func toVariantResponse(v *catalog.Variant) VariantResponse {
	return VariantResponse{
		ID:        v.ID.String(),
		ProductID: v.ProductID.String(),
		SKU:       v.SKU,
		Color:     v.Color,
		Size:      v.Size,
		Price:     v.Price,
		Stock:     v.Stock,
		Active:    v.Active,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
