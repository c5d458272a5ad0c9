package cache

import (
	"context"

	"github.com/google/uuid"
)

// maxRecentViews caps the per-user recently-viewed list
const maxRecentViews = 50

// ProductScore pairs a product with its accumulated view count
type ProductScore struct {
	ProductID uuid.UUID
	Views     int64
}

// ViewStore keeps the fast per-tenant view counters behind trending and
// recently-viewed lookups. Durable view events remain the source of truth;
// a store can be rebuilt from them.
type ViewStore interface {
	// RecordView bumps the product's trending score and pushes it to the
	// front of the user's recently-viewed list
	RecordView(ctx context.Context, tenantID, userID string, productID uuid.UUID) error

	// Trending returns the tenant's most viewed products, highest first,
	// up to limit entries
	Trending(ctx context.Context, tenantID string, limit int) ([]ProductScore, error)

	// RecentlyViewed returns the user's last viewed products, newest first
	// and deduplicated, up to limit entries
	RecentlyViewed(ctx context.Context, tenantID, userID string, limit int) ([]uuid.UUID, error)

	// Ping checks that the store is reachable
	Ping(ctx context.Context) error

	// Close releases store resources
	Close() error
}
