package recommendation

import (
	"time"

	"github.com/adebold/Commerce-Studio-sub022/internal/domain/shared"
	"github.com/google/uuid"
)

// ViewEvent is the durable record of a storefront product view. The fast
// counters behind trending and recently-viewed live in the view store; this
// row is the source of truth they can be rebuilt from.
type ViewEvent struct {
	shared.TenantEntity
	UserID    string    `gorm:"type:varchar(100);not null;index:idx_view_tenant_user,priority:2"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	ViewedAt  time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ViewEvent) TableName() string {
	return "view_events"
}

// NewViewEvent records that a user viewed a product
func NewViewEvent(tenantID, userID string, productID uuid.UUID) (*ViewEvent, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT_ID", "View event requires a product")
	}

	return &ViewEvent{
		TenantEntity: shared.NewTenantEntity(tenantID),
		UserID:       userID,
		ProductID:    productID,
		ViewedAt:     time.Now(),
	}, nil
}

// validateUserID validates the storefront user identifier. User IDs come
// from the storefront session layer and may be anonymous visitor tokens, so
// only length is enforced.
func validateUserID(userID string) error {
	if userID == "" {
		return shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if len(userID) > 100 {
		return shared.NewDomainError("INVALID_USER_ID", "User ID cannot exceed 100 characters")
	}
	return nil
}
