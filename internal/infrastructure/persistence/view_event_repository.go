package persistence

import (
	"context"

	"github.com/adebold/Commerce-Studio-sub022/internal/domain/recommendation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormViewEventRepository implements ViewEventRepository using GORM
type GormViewEventRepository struct {
	db *gorm.DB
}

// NewGormViewEventRepository creates a new GormViewEventRepository
func NewGormViewEventRepository(db *gorm.DB) *GormViewEventRepository {
	return &GormViewEventRepository{db: db}
}

// Create appends a view event
func (r *GormViewEventRepository) Create(ctx context.Context, event *recommendation.ViewEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// FindRecentByUser finds a user's view events, most recent first
func (r *GormViewEventRepository) FindRecentByUser(ctx context.Context, tenantID, userID string, limit int) ([]recommendation.ViewEvent, error) {
	var events []recommendation.ViewEvent
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Order("viewed_at DESC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// CountByProduct counts recorded views of a product within a tenant
func (r *GormViewEventRepository) CountByProduct(ctx context.Context, tenantID string, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&recommendation.ViewEvent{}).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormViewEventRepository implements ViewEventRepository
var _ recommendation.ViewEventRepository = (*GormViewEventRepository)(nil)
