package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/adebold/Commerce-Studio-sub022/internal/infrastructure/telemetry"
)

// HTTPMetricsConfig configures the HTTP metrics middleware.
type HTTPMetricsConfig struct {
	// MeterProvider supplies the meter; a disabled provider yields a no-op middleware.
	MeterProvider *telemetry.MeterProvider
	// Logger reports instrument creation failures.
	Logger *zap.Logger
	// SkipPaths are exact request paths excluded from measurement.
	SkipPaths []string
}

type httpMetrics struct {
	requestTotal    *telemetry.Counter
	requestDuration *telemetry.Histogram
	requestSize     *telemetry.Histogram
	responseSize    *telemetry.Histogram
	activeRequests  metric.Int64UpDownCounter
}

func newHTTPMetrics(mp *telemetry.MeterProvider) (*httpMetrics, error) {
	meter := mp.Meter("http.server")

	requestTotal, err := telemetry.NewCounter(meter,
		"http.server.request.total",
		"Total number of HTTP requests",
		"{request}")
	if err != nil {
		return nil, err
	}

	requestDuration, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http.server.request.duration",
		Description: "HTTP request duration",
		Unit:        "s",
		Boundaries:  telemetry.HTTPDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	requestSize, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http.server.request.size",
		Description: "HTTP request body size",
		Unit:        "By",
	})
	if err != nil {
		return nil, err
	}

	responseSize, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http.server.response.size",
		Description: "HTTP response body size",
		Unit:        "By",
	})
	if err != nil {
		return nil, err
	}

	activeRequests, err := meter.Int64UpDownCounter(
		"http.server.active_requests",
		metric.WithDescription("Number of in-flight HTTP requests"),
		metric.WithUnit("{request}"))
	if err != nil {
		return nil, err
	}

	return &httpMetrics{
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		requestSize:     requestSize,
		responseSize:    responseSize,
		activeRequests:  activeRequests,
	}, nil
}

// HTTPMetrics returns middleware that records request count, duration,
// sizes and in-flight gauge for every request. Attributes carry the route
// pattern rather than the raw path so cardinality stays bounded.
func HTTPMetrics(cfg HTTPMetricsConfig) gin.HandlerFunc {
	if cfg.MeterProvider == nil || !cfg.MeterProvider.IsEnabled() {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	m, err := newHTTPMetrics(cfg.MeterProvider)
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Error("failed to create HTTP metrics instruments", zap.Error(err))
		}
		return func(c *gin.Context) {
			c.Next()
		}
	}

	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		start := time.Now()

		baseAttrs := []attribute.KeyValue{
			telemetry.AttrHTTPMethod.String(c.Request.Method),
			telemetry.AttrHTTPRoute.String(getRoutePattern(c)),
		}
		m.activeRequests.Add(ctx, 1, metric.WithAttributes(baseAttrs...))

		if c.Request.ContentLength > 0 {
			m.requestSize.Record(ctx, float64(c.Request.ContentLength), baseAttrs...)
		}

		c.Next()

		attrs := append(baseAttrs,
			telemetry.AttrHTTPStatusCode.String(strconv.Itoa(c.Writer.Status())))
		if tenantID := metricsTenantID(c); tenantID != "" {
			attrs = append(attrs, telemetry.AttrTenantID.String(tenantID))
		}

		m.requestTotal.Inc(ctx, attrs...)
		m.requestDuration.RecordDuration(ctx, time.Since(start), attrs...)
		if size := c.Writer.Size(); size > 0 {
			m.responseSize.Record(ctx, float64(size), attrs...)
		}
		m.activeRequests.Add(ctx, -1, metric.WithAttributes(baseAttrs...))
	}
}

// getRoutePattern returns the matched route template ("/api/products/:productId/variants")
// or "unmatched" when no route matched, keeping metric cardinality bounded.
func getRoutePattern(c *gin.Context) string {
	if pattern := c.FullPath(); pattern != "" {
		return pattern
	}
	return "unmatched"
}

// metricsTenantID resolves the tenant for metric attribution under the same
// trust rules as tracing: token claims first, then the validated header.
func metricsTenantID(c *gin.Context) string {
	if tenantID := GetJWTTenantID(c); tenantID != "" {
		return tenantID
	}
	headerTenantID := c.GetHeader("X-Tenant-ID")
	if headerTenantID != "" && len(headerTenantID) <= MaxTenantIDLength && tenantSlugRegex.MatchString(headerTenantID) {
		return headerTenantID
	}
	return ""
}
