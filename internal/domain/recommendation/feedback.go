package recommendation

import (
	"github.com/adebold/Commerce-Studio-sub022/internal/domain/shared"
	"github.com/google/uuid"
)

// Rating bounds for feedback entries
const (
	MinRating = 1
	MaxRating = 5
)

// FeedbackEntry is a user's rating of a recommended product. Ratings feed
// offline quality review; nothing in the serving path consumes them.
type FeedbackEntry struct {
	shared.TenantEntity
	UserID    string    `gorm:"type:varchar(100);not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:varchar(1000)"`
}

// TableName returns the table name for GORM
func (FeedbackEntry) TableName() string {
	return "feedback_entries"
}

// NewFeedbackEntry creates a feedback entry with a rating between 1 and 5
func NewFeedbackEntry(tenantID, userID string, productID uuid.UUID, rating int, comment string) (*FeedbackEntry, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT_ID", "Feedback requires a product")
	}
	if rating < MinRating || rating > MaxRating {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	if len(comment) > 1000 {
		return nil, shared.NewDomainError("INVALID_COMMENT", "Comment cannot exceed 1000 characters")
	}

	return &FeedbackEntry{
		TenantEntity: shared.NewTenantEntity(tenantID),
		UserID:       userID,
		ProductID:    productID,
		Rating:       rating,
		Comment:      comment,
	}, nil
}
