package recommendation

import (
	"context"

	"github.com/google/uuid"
)

// ViewEventRepository defines the interface for view event persistence
type ViewEventRepository interface {
	// Create appends a view event
	Create(ctx context.Context, event *ViewEvent) error

	// FindRecentByUser finds a user's view events, most recent first,
	// up to limit rows
	FindRecentByUser(ctx context.Context, tenantID, userID string, limit int) ([]ViewEvent, error)

	// CountByProduct counts recorded views of a product within a tenant
	CountByProduct(ctx context.Context, tenantID string, productID uuid.UUID) (int64, error)
}

// FeedbackRepository defines the interface for feedback persistence
type FeedbackRepository interface {
	// Create appends a feedback entry
	Create(ctx context.Context, entry *FeedbackEntry) error

	// FindByProduct finds feedback entries for a product, most recent first,
	// up to limit rows
	FindByProduct(ctx context.Context, tenantID string, productID uuid.UUID, limit int) ([]FeedbackEntry, error)

	// AverageRating returns the mean rating of a product, or 0 when the
	// product has no feedback
	AverageRating(ctx context.Context, tenantID string, productID uuid.UUID) (float64, error)
}
