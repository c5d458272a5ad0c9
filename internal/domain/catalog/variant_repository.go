package catalog

import (
	"context"

	"github.com/google/uuid"
)

// VariantRepository defines the interface for product variant persistence.
// Every query is tenant-scoped.
type VariantRepository interface {
	// FindByID finds a variant by ID within a tenant
	FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*Variant, error)

	// FindByProduct finds all variants of a product within a tenant
	FindByProduct(ctx context.Context, tenantID string, productID uuid.UUID) ([]Variant, error)

	// ExistsBySKU checks if a variant with the given SKU exists in the tenant
	ExistsBySKU(ctx context.Context, tenantID, sku string) (bool, error)

	// Save creates or updates a variant
	Save(ctx context.Context, variant *Variant) error

	// Delete deletes a variant within a tenant
	Delete(ctx context.Context, tenantID string, id uuid.UUID) error
}
