package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/adebold/Commerce-Studio-sub022/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

func TestNewBusinessMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:  meter,
		Logger: zap.NewNop(),
	})

	require.NoError(t, err)
	require.NotNil(t, bm)
}

func TestNewBusinessMetrics_NilMeter(t *testing.T) {
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:  nil,
		Logger: zap.NewNop(),
	})

	require.Error(t, err)
	assert.Nil(t, bm)
	assert.Equal(t, "NewBusinessMetrics: meter cannot be nil", err.Error())
}

func TestBusinessMetrics_RecordProductView(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	bm.RecordProductView(ctx, "acme")
	bm.RecordProductView(ctx, "globex")
}

func TestBusinessMetrics_RecordRecommendationServed(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	bm.RecordRecommendationServed(ctx, "acme", telemetry.RecommendationSourceTrending)
	bm.RecordRecommendationServed(ctx, "acme", telemetry.RecommendationSourceRecentlyViewed)
	bm.RecordRecommendationServed(ctx, "acme", telemetry.RecommendationSourceSimilar)
}

func TestBusinessMetrics_RecordSearch(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	bm.RecordSearch(ctx, "acme")
	bm.RecordSearch(ctx, "globex")
}

func TestBusinessMetrics_RecordFeedback(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	bm.RecordFeedback(ctx, "acme", 5)
	bm.RecordFeedback(ctx, "acme", 1)
}

func TestBusinessMetrics_RecordTokenIssued(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	bm.RecordTokenIssued(ctx, "acme", telemetry.GrantTypeClientCredentials)
	bm.RecordTokenIssued(ctx, "acme", telemetry.GrantTypeRefreshToken)
}

func TestBusinessMetrics_RecordActiveProducts(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	bm.RecordActiveProducts(ctx, "acme", 120)
	bm.RecordActiveProducts(ctx, "acme", 118)
}

func TestBusinessMetrics_RecordIndexDocuments(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	bm.RecordIndexDocuments(ctx, "acme", 120)
	bm.RecordIndexDocuments(ctx, "globex", 45)
}

// Mock implementations for testing periodic collection

type mockTenantProvider struct {
	tenants []string
	err     error
}

func (m *mockTenantProvider) ActiveTenants(ctx context.Context) ([]string, error) {
	return m.tenants, m.err
}

type mockCatalogProvider struct {
	activeProducts int64
	err            error
}

func (m *mockCatalogProvider) CountActiveProducts(ctx context.Context, tenantID string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.activeProducts, nil
}

type mockIndexProvider struct {
	documents int64
	err       error
}

func (m *mockIndexProvider) DocumentCount(ctx context.Context, tenantID string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.documents, nil
}

func TestBusinessMetrics_PeriodicCollection(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	catalogProvider := &mockCatalogProvider{activeProducts: 100}
	indexProvider := &mockIndexProvider{documents: 95}

	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:           meter,
		Logger:          zap.NewNop(),
		CatalogProvider: catalogProvider,
		IndexProvider:   indexProvider,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tenantProvider := &mockTenantProvider{
		tenants: []string{"acme"},
	}

	// Start periodic collection with short interval for testing
	bm.StartPeriodicCollection(ctx, tenantProvider, 100*time.Millisecond)

	// Wait for at least one collection cycle
	time.Sleep(150 * time.Millisecond)

	// Stop collection
	bm.Stop()

	// Should complete without error
}

func TestBusinessMetrics_PeriodicCollection_NoProvider(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:  meter,
		Logger: zap.NewNop(),
		// No catalog or index provider
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tenantProvider := &mockTenantProvider{
		tenants: []string{"acme"},
	}

	// Should not panic with no providers
	bm.StartPeriodicCollection(ctx, tenantProvider, 50*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	bm.Stop()
}

func TestBusinessMetrics_Stop_Idempotent(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	// Calling Stop multiple times should not panic
	bm.Stop()
	bm.Stop()
	bm.Stop()
}

func TestBusinessMetrics_StartPeriodicCollection_OnlyOnce(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:  meter,
		Logger: zap.NewNop(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tenantProvider := &mockTenantProvider{
		tenants: []string{},
	}

	// Calling StartPeriodicCollection multiple times should only start once
	bm.StartPeriodicCollection(ctx, tenantProvider, time.Hour)
	bm.StartPeriodicCollection(ctx, tenantProvider, time.Minute)
	bm.StartPeriodicCollection(ctx, tenantProvider, time.Second)

	bm.Stop()
}

func TestRecommendationSource_Values(t *testing.T) {
	assert.Equal(t, telemetry.RecommendationSource("trending"), telemetry.RecommendationSourceTrending)
	assert.Equal(t, telemetry.RecommendationSource("recently_viewed"), telemetry.RecommendationSourceRecentlyViewed)
	assert.Equal(t, telemetry.RecommendationSource("similar"), telemetry.RecommendationSourceSimilar)
}

func TestGrantType_Values(t *testing.T) {
	assert.Equal(t, telemetry.GrantType("client_credentials"), telemetry.GrantTypeClientCredentials)
	assert.Equal(t, telemetry.GrantType("refresh_token"), telemetry.GrantTypeRefreshToken)
}

func TestMetricsError_Error(t *testing.T) {
	err := &telemetry.MetricsError{
		Op:  "TestOperation",
		Err: "test error message",
	}

	assert.Equal(t, "TestOperation: test error message", err.Error())
}
