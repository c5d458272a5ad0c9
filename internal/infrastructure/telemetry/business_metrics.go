// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the commerce platform.
// It tracks storefront activity (views, searches, recommendations),
// credential issuance, and catalog health.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	productViewTotal          *Counter
	recommendationServedTotal *Counter
	searchTotal               *Counter
	feedbackTotal             *Counter
	tokenIssuedTotal          *Counter

	// Gauge metrics (point-in-time values)
	catalogActiveProducts *Gauge
	searchIndexDocuments  *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data providers for periodic collection
	catalogProvider CatalogMetricsProvider
	indexProvider   SearchIndexMetricsProvider
}

// CatalogMetricsProvider provides catalog data for periodic metrics
// collection. This interface lets the telemetry layer query catalog state
// without depending on the catalog domain directly.
type CatalogMetricsProvider interface {
	// CountActiveProducts returns the number of active products for a tenant
	CountActiveProducts(ctx context.Context, tenantID string) (int64, error)
}

// SearchIndexMetricsProvider reports how many documents the search index
// holds per tenant.
type SearchIndexMetricsProvider interface {
	DocumentCount(ctx context.Context, tenantID string) (int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	CatalogProvider CatalogMetricsProvider
	IndexProvider   SearchIndexMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:           cfg.Meter,
		logger:          logger,
		stopChan:        make(chan struct{}),
		catalogProvider: cfg.CatalogProvider,
		indexProvider:   cfg.IndexProvider,
	}

	// Initialize counter metrics
	var err error

	// Storefront activity metrics
	bm.productViewTotal, err = NewCounter(
		cfg.Meter,
		"commerce_product_view_total",
		"Total number of product views recorded",
		"{views}",
	)
	if err != nil {
		return nil, err
	}

	bm.recommendationServedTotal, err = NewCounter(
		cfg.Meter,
		"commerce_recommendation_served_total",
		"Total number of recommendation responses served",
		"{responses}",
	)
	if err != nil {
		return nil, err
	}

	bm.searchTotal, err = NewCounter(
		cfg.Meter,
		"commerce_search_total",
		"Total number of search queries executed",
		"{queries}",
	)
	if err != nil {
		return nil, err
	}

	bm.feedbackTotal, err = NewCounter(
		cfg.Meter,
		"commerce_feedback_total",
		"Total number of recommendation feedback entries submitted",
		"{entries}",
	)
	if err != nil {
		return nil, err
	}

	// Credential metrics
	bm.tokenIssuedTotal, err = NewCounter(
		cfg.Meter,
		"commerce_token_issued_total",
		"Total number of access token pairs issued",
		"{tokens}",
	)
	if err != nil {
		return nil, err
	}

	// Catalog gauge metrics
	bm.catalogActiveProducts, err = NewGauge(
		cfg.Meter,
		"commerce_catalog_active_products",
		"Current number of active products in a tenant's catalog",
		"{products}",
	)
	if err != nil {
		return nil, err
	}

	bm.searchIndexDocuments, err = NewGauge(
		cfg.Meter,
		"commerce_search_index_documents",
		"Current number of documents in a tenant's search index",
		"{documents}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Storefront Activity Metrics
// =============================================================================

// RecommendationSource identifies which surface produced a recommendation
// response for metrics labeling.
type RecommendationSource string

const (
	RecommendationSourceTrending       RecommendationSource = "trending"
	RecommendationSourceRecentlyViewed RecommendationSource = "recently_viewed"
	RecommendationSourceSimilar        RecommendationSource = "similar"
)

// RecordProductView records a storefront product view.
// This should be called from the application layer when a view is tracked.
func (bm *BusinessMetrics) RecordProductView(ctx context.Context, tenantID string) {
	bm.productViewTotal.Inc(ctx,
		AttrTenantID.String(tenantID),
	)
}

// RecordRecommendationServed records a recommendation response.
func (bm *BusinessMetrics) RecordRecommendationServed(ctx context.Context, tenantID string, source RecommendationSource) {
	bm.recommendationServedTotal.Inc(ctx,
		AttrTenantID.String(tenantID),
		AttrRecommendationSource.String(string(source)),
	)
}

// RecordSearch records an executed search query.
func (bm *BusinessMetrics) RecordSearch(ctx context.Context, tenantID string) {
	bm.searchTotal.Inc(ctx,
		AttrTenantID.String(tenantID),
	)
}

// RecordFeedback records a submitted feedback entry. Rating is carried as
// an attribute; the value range is 1-5 so cardinality stays bounded.
func (bm *BusinessMetrics) RecordFeedback(ctx context.Context, tenantID string, rating int) {
	bm.feedbackTotal.Inc(ctx,
		AttrTenantID.String(tenantID),
		AttrRating.Int(rating),
	)
}

// =============================================================================
// Credential Metrics
// =============================================================================

// GrantType identifies how a token pair was obtained for metrics labeling.
type GrantType string

const (
	GrantTypeClientCredentials GrantType = "client_credentials"
	GrantTypeRefreshToken      GrantType = "refresh_token"
)

// RecordTokenIssued records an issued token pair.
// This should be called when a token or refresh request succeeds.
func (bm *BusinessMetrics) RecordTokenIssued(ctx context.Context, tenantID string, grant GrantType) {
	bm.tokenIssuedTotal.Inc(ctx,
		AttrTenantID.String(tenantID),
		AttrGrantType.String(string(grant)),
	)
}

// =============================================================================
// Catalog Metrics
// =============================================================================

// RecordActiveProducts records the current number of active products for a
// tenant. This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordActiveProducts(ctx context.Context, tenantID string, count int64) {
	bm.catalogActiveProducts.Record(ctx, count,
		AttrTenantID.String(tenantID),
	)
}

// RecordIndexDocuments records the current search index size for a tenant.
// This is a gauge metric; the search service also updates it after a reindex.
func (bm *BusinessMetrics) RecordIndexDocuments(ctx context.Context, tenantID string, count int64) {
	bm.searchIndexDocuments.Record(ctx, count,
		AttrTenantID.String(tenantID),
	)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// TenantProvider provides tenant identifiers for periodic metrics collection.
type TenantProvider interface {
	ActiveTenants(ctx context.Context) ([]string, error)
}

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects catalog metrics every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, tenantProvider TenantProvider, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, tenantProvider, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, tenantProvider TenantProvider, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectCatalogMetrics(ctx, tenantProvider)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectCatalogMetrics(ctx, tenantProvider)
		}
	}
}

// collectCatalogMetrics collects catalog gauge metrics for all tenants.
func (bm *BusinessMetrics) collectCatalogMetrics(ctx context.Context, tenantProvider TenantProvider) {
	if bm.catalogProvider == nil && bm.indexProvider == nil {
		bm.logger.Debug("No catalog providers configured, skipping catalog metrics collection")
		return
	}

	tenantIDs, err := tenantProvider.ActiveTenants(ctx)
	if err != nil {
		bm.logger.Error("Failed to get tenant IDs for metrics collection", zap.Error(err))
		return
	}

	for _, tenantID := range tenantIDs {
		bm.collectTenantCatalogMetrics(ctx, tenantID)
	}
}

// collectTenantCatalogMetrics collects catalog metrics for a single tenant.
func (bm *BusinessMetrics) collectTenantCatalogMetrics(ctx context.Context, tenantID string) {
	// Collect active product count
	if bm.catalogProvider != nil {
		count, err := bm.catalogProvider.CountActiveProducts(ctx, tenantID)
		if err != nil {
			bm.logger.Warn("Failed to get active product count for tenant",
				zap.String("tenant_id", tenantID),
				zap.Error(err),
			)
		} else {
			bm.RecordActiveProducts(ctx, tenantID, count)
		}
	}

	// Collect search index size
	if bm.indexProvider != nil {
		count, err := bm.indexProvider.DocumentCount(ctx, tenantID)
		if err != nil {
			bm.logger.Warn("Failed to get index document count for tenant",
				zap.String("tenant_id", tenantID),
				zap.Error(err),
			)
		} else {
			bm.RecordIndexDocuments(ctx, tenantID, count)
		}
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}

// =============================================================================
// Attribute Key Constants
// =============================================================================

// Business metrics attribute keys not already defined in metrics.go
var (
	AttrRecommendationSource = attribute.Key("recommendation_source")
	AttrGrantType            = attribute.Key("grant_type")
	AttrRating               = attribute.Key("rating")
)
