package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence.
// Every query is tenant-scoped; implementations must never return rows
// across tenant boundaries.
type ProductRepository interface {
	// FindByID finds a product by ID within a tenant
	FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*Product, error)

	// FindByIDs finds multiple products by their IDs, keeping only rows
	// that exist
	FindByIDs(ctx context.Context, tenantID string, ids []uuid.UUID) ([]Product, error)

	// FindBySKU finds a product by its SKU within a tenant
	FindBySKU(ctx context.Context, tenantID, sku string) (*Product, error)

	// FindActive finds all active products for a tenant
	FindActive(ctx context.Context, tenantID string) ([]Product, error)

	// FindByCategory finds active products in a category, excluding one
	// product, up to limit rows
	FindByCategory(ctx context.Context, tenantID, category string, exclude uuid.UUID, limit int) ([]Product, error)

	// FindByBrand finds active products of a brand, excluding one product,
	// up to limit rows
	FindByBrand(ctx context.Context, tenantID, brand string, exclude uuid.UUID, limit int) ([]Product, error)

	// Search finds active products whose name, brand, or SKU contains the
	// lowercased query, with the total match count for pagination
	Search(ctx context.Context, tenantID, query string, limit, offset int) ([]Product, int64, error)

	// Brands returns the distinct brands of a tenant's active products
	Brands(ctx context.Context, tenantID string) ([]string, error)

	// Categories returns the distinct categories of a tenant's active products
	Categories(ctx context.Context, tenantID string) ([]string, error)

	// ExistsBySKU checks if a product with the given SKU exists in the tenant
	ExistsBySKU(ctx context.Context, tenantID, sku string) (bool, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product within a tenant
	Delete(ctx context.Context, tenantID string, id uuid.UUID) error
}
