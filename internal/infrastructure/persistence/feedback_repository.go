package persistence

import (
	"context"

	"github.com/adebold/Commerce-Studio-sub022/internal/domain/recommendation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFeedbackRepository implements FeedbackRepository using GORM
type GormFeedbackRepository struct {
	db *gorm.DB
}

// NewGormFeedbackRepository creates a new GormFeedbackRepository
func NewGormFeedbackRepository(db *gorm.DB) *GormFeedbackRepository {
	return &GormFeedbackRepository{db: db}
}

// Create appends a feedback entry
func (r *GormFeedbackRepository) Create(ctx context.Context, entry *recommendation.FeedbackEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByProduct finds feedback entries for a product, most recent first
func (r *GormFeedbackRepository) FindByProduct(ctx context.Context, tenantID string, productID uuid.UUID, limit int) ([]recommendation.FeedbackEntry, error) {
	var entries []recommendation.FeedbackEntry
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// AverageRating returns the mean rating of a product, or 0 without feedback
func (r *GormFeedbackRepository) AverageRating(ctx context.Context, tenantID string, productID uuid.UUID) (float64, error) {
	var avg float64
	if err := r.db.WithContext(ctx).
		Model(&recommendation.FeedbackEntry{}).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error; err != nil {
		return 0, err
	}
	return avg, nil
}

// Ensure GormFeedbackRepository implements FeedbackRepository
var _ recommendation.FeedbackRepository = (*GormFeedbackRepository)(nil)
