package recommendation

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/adebold/Commerce-Studio-sub022/internal/domain/catalog"
	"github.com/adebold/Commerce-Studio-sub022/internal/domain/recommendation"
	"github.com/adebold/Commerce-Studio-sub022/internal/domain/shared"
	"github.com/adebold/Commerce-Studio-sub022/internal/infrastructure/cache"
	"github.com/adebold/Commerce-Studio-sub022/internal/infrastructure/telemetry"
)

// Default and maximum list sizes for recommendation lookups
const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// Service serves product recommendations for a tenant's storefront. Lists
// are plain lookups over view counters and catalog classification; there is
// no scoring model behind them.
type Service struct {
	views    cache.ViewStore
	events   recommendation.ViewEventRepository
	feedback recommendation.FeedbackRepository
	products catalog.ProductRepository
	metrics  *telemetry.BusinessMetrics
}

// NewService creates a recommendation Service
func NewService(
	views cache.ViewStore,
	events recommendation.ViewEventRepository,
	feedback recommendation.FeedbackRepository,
	products catalog.ProductRepository,
) *Service {
	return &Service{
		views:    views,
		events:   events,
		feedback: feedback,
		products: products,
	}
}

// SetBusinessMetrics sets the business metrics collector. Optional; when
// unset no metrics are recorded.
func (s *Service) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.metrics = bm
}

func (s *Service) recordServed(ctx context.Context, tenantID string, source telemetry.RecommendationSource) {
	if s.metrics != nil {
		s.metrics.RecordRecommendationServed(ctx, tenantID, source)
	}
}

// clampLimit normalizes a caller-supplied limit into [1, MaxLimit]
func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Trending returns the tenant's most viewed products, highest view count
// first. Products that have been archived since their views accrued are
// dropped from the result rather than served stale.
func (s *Service) Trending(ctx context.Context, tenantID string, limit int) ([]RecommendedProduct, error) {
	limit = clampLimit(limit)

	ctx, span := telemetry.StartServiceSpan(ctx, "recommendation", "trending")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, tenantID,
		telemetry.SpanAttrLimit, limit,
	)

	scores, err := s.views.Trending(ctx, tenantID, limit)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if len(scores) == 0 {
		return []RecommendedProduct{}, nil
	}

	ids := make([]uuid.UUID, 0, len(scores))
	viewsByID := make(map[uuid.UUID]int64, len(scores))
	for _, score := range scores {
		ids = append(ids, score.ProductID)
		viewsByID[score.ProductID] = score.Views
	}

	products, err := s.products.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	// Preserve the store's ordering; FindByIDs does not
	result := make([]RecommendedProduct, 0, len(scores))
	for _, score := range scores {
		p, ok := byID[score.ProductID]
		if !ok || !p.IsActive() {
			continue
		}
		result = append(result, toRecommendedProduct(p, viewsByID[p.ID]))
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrResultCount, len(result))
	s.recordServed(ctx, tenantID, telemetry.RecommendationSourceTrending)
	return result, nil
}

// RecentlyViewed returns the user's recently viewed products, newest first
// and de-duplicated. The view store is authoritative for ordering; when it
// has no entries (fresh store) the durable event log is consulted instead.
func (s *Service) RecentlyViewed(ctx context.Context, tenantID, userID string, limit int) ([]RecommendedProduct, error) {
	limit = clampLimit(limit)

	ctx, span := telemetry.StartServiceSpan(ctx, "recommendation", "recently_viewed")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, tenantID,
		telemetry.SpanAttrUserID, userID,
		telemetry.SpanAttrLimit, limit,
	)

	ids, err := s.views.RecentlyViewed(ctx, tenantID, userID, limit)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if len(ids) == 0 {
		telemetry.AddEvent(span, "view_store_empty_fallback")
		events, err := s.events.FindRecentByUser(ctx, tenantID, userID, limit*2)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		seen := make(map[uuid.UUID]struct{}, len(events))
		for _, ev := range events {
			if _, dup := seen[ev.ProductID]; dup {
				continue
			}
			seen[ev.ProductID] = struct{}{}
			ids = append(ids, ev.ProductID)
			if len(ids) == limit {
				break
			}
		}
	}

	if len(ids) == 0 {
		return []RecommendedProduct{}, nil
	}

	products, err := s.products.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	result := make([]RecommendedProduct, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok || !p.IsActive() {
			continue
		}
		result = append(result, toRecommendedProduct(p, 0))
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrResultCount, len(result))
	s.recordServed(ctx, tenantID, telemetry.RecommendationSourceRecentlyViewed)
	return result, nil
}

// Similar returns products sharing the anchor product's category, padded
// with same-brand products when the category yields too few. The anchor
// itself is always excluded.
func (s *Service) Similar(ctx context.Context, tenantID string, productID uuid.UUID, limit int) ([]RecommendedProduct, error) {
	limit = clampLimit(limit)

	ctx, span := telemetry.StartServiceSpan(ctx, "recommendation", "similar")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, tenantID,
		telemetry.SpanAttrProductID, productID.String(),
		telemetry.SpanAttrLimit, limit,
	)

	anchor, err := s.products.FindByID(ctx, tenantID, productID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var matches []catalog.Product
	if anchor.Category != "" {
		matches, err = s.products.FindByCategory(ctx, tenantID, anchor.Category, anchor.ID, limit)
		if err != nil {
			return nil, err
		}
	}

	if len(matches) < limit && anchor.Brand != "" {
		byBrand, err := s.products.FindByBrand(ctx, tenantID, anchor.Brand, anchor.ID, limit-len(matches))
		if err != nil {
			return nil, err
		}
		seen := make(map[uuid.UUID]struct{}, len(matches))
		for _, m := range matches {
			seen[m.ID] = struct{}{}
		}
		for i := range byBrand {
			if _, dup := seen[byBrand[i].ID]; !dup {
				matches = append(matches, byBrand[i])
			}
		}
	}

	result := make([]RecommendedProduct, 0, len(matches))
	for i := range matches {
		result = append(result, toRecommendedProduct(&matches[i], 0))
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrResultCount, len(result))
	s.recordServed(ctx, tenantID, telemetry.RecommendationSourceSimilar)
	return result, nil
}

// TrackView records that a user viewed a product. The durable event row is
// the source of truth; the view store update is best effort and a store
// failure does not fail the request.
func (s *Service) TrackView(ctx context.Context, tenantID string, req TrackViewRequest) (*TrackViewResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "recommendation", "track_view")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, tenantID,
		telemetry.SpanAttrProductID, req.ProductID,
		telemetry.SpanAttrUserID, req.UserID,
	)

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID must be a valid UUID")
	}

	if _, err := s.products.FindByID(ctx, tenantID, productID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, err
	}

	event, err := recommendation.NewViewEvent(tenantID, req.UserID, productID)
	if err != nil {
		return nil, err
	}
	if err := s.events.Create(ctx, event); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	// Counter update may lag behind the event log; Trending tolerates it
	_ = s.views.RecordView(ctx, tenantID, req.UserID, productID)
	telemetry.AddEvent(span, "view_recorded", telemetry.SpanAttrProductID, productID.String())

	if s.metrics != nil {
		s.metrics.RecordProductView(ctx, tenantID)
	}

	return &TrackViewResponse{
		ProductID: productID.String(),
		UserID:    req.UserID,
		ViewedAt:  event.ViewedAt,
	}, nil
}

// SubmitFeedback persists a product rating from a storefront user
func (s *Service) SubmitFeedback(ctx context.Context, tenantID string, req SubmitFeedbackRequest) (*SubmitFeedbackResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "recommendation", "submit_feedback")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, tenantID,
		telemetry.SpanAttrProductID, req.ProductID,
	)

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID must be a valid UUID")
	}

	if _, err := s.products.FindByID(ctx, tenantID, productID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, err
	}

	entry, err := recommendation.NewFeedbackEntry(tenantID, req.UserID, productID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	if err := s.feedback.Create(ctx, entry); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordFeedback(ctx, tenantID, entry.Rating)
	}

	return &SubmitFeedbackResponse{
		ID:        entry.ID.String(),
		ProductID: productID.String(),
		Rating:    entry.Rating,
		CreatedAt: entry.CreatedAt,
	}, nil
}
