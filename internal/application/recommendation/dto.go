package recommendation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/adebold/Commerce-Studio-sub022/internal/domain/catalog"
)

// RecommendedProduct is a catalog product as served by recommendation
// endpoints, optionally annotated with its view count.
type RecommendedProduct struct {
	ID       string          `json:"id"`
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Brand    string          `json:"brand,omitempty"`
	Category string          `json:"category,omitempty"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"imageUrl,omitempty"`
	Views    int64           `json:"views,omitempty"`
}

// TrackViewRequest carries a view event to record
type TrackViewRequest struct {
	ProductID string `json:"productId" binding:"required"`
	UserID    string `json:"userId" binding:"required"`
}

// TrackViewResponse confirms a recorded view
type TrackViewResponse struct {
	ProductID string    `json:"productId"`
	UserID    string    `json:"userId"`
	ViewedAt  time.Time `json:"viewedAt"`
}

// SubmitFeedbackRequest carries a product rating
type SubmitFeedbackRequest struct {
	UserID    string `json:"userId" binding:"required"`
	ProductID string `json:"productId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment   string `json:"comment,omitempty" binding:"omitempty,max=1000"`
}

// SubmitFeedbackResponse confirms a stored feedback entry
type SubmitFeedbackResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// toRecommendedProduct maps a catalog product into the response shape
func toRecommendedProduct(p *catalog.Product, views int64) RecommendedProduct {
	return RecommendedProduct{
		ID:       p.ID.String(),
		SKU:      p.SKU,
		Name:     p.Name,
		Brand:    p.Brand,
		Category: p.Category,
		Price:    p.Price,
		ImageURL: p.ImageURL,
		Views:    views,
	}
}
