package telemetry_test

import (
	"context"
	"runtime/pprof"
	"strings"
	"sync"
	"testing"

	"github.com/adebold/Commerce-Studio-sub022/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithProfilingLabels(t *testing.T) {
	ctx := context.Background()

	t.Run("attaches labels to the callback context", func(t *testing.T) {
		labels := map[string]string{
			"controller": "RecommendationHandler",
			"method":     "GET",
			"route":      "/api/v1/recommendations/trending",
		}

		called := false
		telemetry.WithProfilingLabels(ctx, labels, func(c context.Context) {
			called = true
			v, ok := pprof.Label(c, "controller")
			require.True(t, ok)
			assert.Equal(t, "RecommendationHandler", v)
		})
		assert.True(t, called)
	})

	t.Run("runs without a wrapper when labels are empty", func(t *testing.T) {
		for _, labels := range []map[string]string{nil, {}} {
			called := false
			telemetry.WithProfilingLabels(ctx, labels, func(c context.Context) {
				called = true
				_, ok := pprof.Label(c, "controller")
				assert.False(t, ok)
			})
			assert.True(t, called)
		}
	})

	t.Run("drops high-cardinality labels", func(t *testing.T) {
		labels := map[string]string{
			"controller": "RecommendationHandler",
			"user_id":    "storefront-visitor-123",
			"request_id": "req-abc",
			"product_id": "3f8be2a1-5a8e-4f2e-9a35-52a1c4b0f001",
		}

		telemetry.WithProfilingLabels(ctx, labels, func(c context.Context) {
			_, ok := pprof.Label(c, "controller")
			assert.True(t, ok)
			for _, dropped := range []string{"user_id", "request_id", "product_id"} {
				_, ok := pprof.Label(c, dropped)
				assert.False(t, ok, "%s should have been dropped", dropped)
			}
		})
	})

	t.Run("truncates overlong values", func(t *testing.T) {
		labels := map[string]string{
			"route": "/api/v1/search?q=" + strings.Repeat("aviator", 40),
		}

		telemetry.WithProfilingLabels(ctx, labels, func(c context.Context) {
			v, ok := pprof.Label(c, "route")
			require.True(t, ok)
			assert.Len(t, v, telemetry.MaxLabelValueLength)
		})
	})

	t.Run("skips empty keys and values", func(t *testing.T) {
		labels := map[string]string{
			"controller": "SearchHandler",
			"method":     "",
			"":           "value",
		}

		telemetry.WithProfilingLabels(ctx, labels, func(c context.Context) {
			_, ok := pprof.Label(c, "controller")
			assert.True(t, ok)
			_, ok = pprof.Label(c, "method")
			assert.False(t, ok)
		})
	})

	t.Run("normalizes label keys", func(t *testing.T) {
		labels := map[string]string{
			"My Custom-Key": "value",
		}

		telemetry.WithProfilingLabels(ctx, labels, func(c context.Context) {
			v, ok := pprof.Label(c, "my_custom_key")
			require.True(t, ok)
			assert.Equal(t, "value", v)
		})
	})

	t.Run("preserves caller context values", func(t *testing.T) {
		type contextKey string
		key := contextKey("request-key")
		ctx := context.WithValue(context.Background(), key, "kept")

		telemetry.WithProfilingLabels(ctx, map[string]string{"controller": "SearchHandler"}, func(c context.Context) {
			assert.Equal(t, "kept", c.Value(key))
		})
	})
}

func TestWithPprofLabels(t *testing.T) {
	ctx := context.Background()

	t.Run("labels visible through the native pprof API", func(t *testing.T) {
		labels := map[string]string{
			"controller": "VariantHandler",
			"method":     "POST",
		}

		telemetry.WithPprofLabels(ctx, labels, func(c context.Context) {
			v, ok := pprof.Label(c, "method")
			require.True(t, ok)
			assert.Equal(t, "POST", v)
		})
	})

	t.Run("empty labels still run the callback", func(t *testing.T) {
		for _, labels := range []map[string]string{nil, {}} {
			called := false
			telemetry.WithPprofLabels(ctx, labels, func(c context.Context) { called = true })
			assert.True(t, called)
		}
	})
}

func TestProfilingScope(t *testing.T) {
	t.Run("builder accumulates all known labels", func(t *testing.T) {
		labels := telemetry.NewProfilingScope(nil).
			WithController("RecommendationHandler").
			WithRoute("/api/v1/recommendations/similar/:id").
			WithMethod("GET").
			WithTenantID("tenant-acme").
			WithOperation("similar_products").
			WithRegion("db_query").
			Labels()

		assert.Equal(t, "RecommendationHandler", labels[telemetry.ProfilingLabelController])
		assert.Equal(t, "/api/v1/recommendations/similar/:id", labels[telemetry.ProfilingLabelRoute])
		assert.Equal(t, "GET", labels[telemetry.ProfilingLabelMethod])
		assert.Equal(t, "tenant-acme", labels[telemetry.ProfilingLabelTenantID])
		assert.Equal(t, "similar_products", labels[telemetry.ProfilingLabelOperation])
		assert.Equal(t, "db_query", labels[telemetry.ProfilingLabelRegion])
	})

	t.Run("seeded labels can be extended and overwritten", func(t *testing.T) {
		scope := telemetry.NewProfilingScope(map[string]string{
			"controller": "SearchHandler",
			"method":     "GET",
		})
		scope.WithRoute("/api/v1/search").WithController("SearchHandlerV2")

		labels := scope.Labels()
		assert.Equal(t, "SearchHandlerV2", labels["controller"])
		assert.Equal(t, "GET", labels["method"])
		assert.Equal(t, "/api/v1/search", labels["route"])
	})

	t.Run("custom labels via WithLabel", func(t *testing.T) {
		labels := telemetry.NewProfilingScope(nil).WithLabel("index_kind", "suggestions").Labels()
		assert.Equal(t, "suggestions", labels["index_kind"])
	})

	t.Run("Labels returns a copy", func(t *testing.T) {
		scope := telemetry.NewProfilingScope(nil).WithController("SearchHandler")

		first := scope.Labels()
		first["controller"] = "mutated"

		assert.Equal(t, "SearchHandler", scope.Labels()["controller"])
	})

	t.Run("scope copies its seed map", func(t *testing.T) {
		seed := map[string]string{"controller": "SearchHandler"}
		scope := telemetry.NewProfilingScope(seed)
		seed["controller"] = "mutated"

		assert.Equal(t, "SearchHandler", scope.Labels()["controller"])
	})

	t.Run("Run attaches accumulated labels", func(t *testing.T) {
		scope := telemetry.NewProfilingScope(nil).
			WithController("AuthHandler").
			WithMethod("POST")

		scope.Run(context.Background(), func(c context.Context) {
			v, ok := pprof.Label(c, "controller")
			require.True(t, ok)
			assert.Equal(t, "AuthHandler", v)
		})
	})
}

func TestHTTPRequestLabels(t *testing.T) {
	tests := []struct {
		name       string
		controller string
		route      string
		method     string
		tenantID   string
		wantLen    int
	}{
		{"all fields", "SearchHandler", "/api/v1/search", "GET", "tenant-acme", 4},
		{"empty tenant", "SearchHandler", "/api/v1/search", "GET", "", 3},
		{"only controller", "SearchHandler", "", "", "", 1},
		{"all empty", "", "", "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labels := telemetry.HTTPRequestLabels(tt.controller, tt.route, tt.method, tt.tenantID)
			assert.Len(t, labels, tt.wantLen)

			if tt.controller != "" {
				assert.Equal(t, tt.controller, labels[telemetry.ProfilingLabelController])
			}
			if tt.tenantID != "" {
				assert.Equal(t, tt.tenantID, labels[telemetry.ProfilingLabelTenantID])
			}
		})
	}
}

func TestOperationLabels(t *testing.T) {
	labels := telemetry.OperationLabels("search_reindex", nil)
	assert.Equal(t, map[string]string{telemetry.ProfilingLabelOperation: "search_reindex"}, labels)

	labels = telemetry.OperationLabels("search_reindex", map[string]string{
		"controller": "SearchHandler",
		"method":     "POST",
	})
	assert.Len(t, labels, 3)
	assert.Equal(t, "search_reindex", labels[telemetry.ProfilingLabelOperation])
	assert.Equal(t, "SearchHandler", labels["controller"])
}

func TestRegionLabels(t *testing.T) {
	labels := telemetry.RegionLabels("db_query", nil)
	assert.Equal(t, map[string]string{telemetry.ProfilingLabelRegion: "db_query"}, labels)

	labels = telemetry.RegionLabels("db_query", map[string]string{
		"operation": "find_active_products",
		"table":     "products",
	})
	assert.Len(t, labels, 3)
	assert.Equal(t, "db_query", labels[telemetry.ProfilingLabelRegion])
	assert.Equal(t, "products", labels["table"])
}

func TestHighCardinalityLabelSet(t *testing.T) {
	for _, label := range []string{"user_id", "request_id", "product_id", "trace_id", "span_id", "session_id"} {
		assert.True(t, telemetry.HighCardinalityLabels[label], "%s should be high cardinality", label)
	}
	assert.False(t, telemetry.HighCardinalityLabels["tenant_id"], "tenant_id stays labelable")
}

func TestNestedProfilingLabels(t *testing.T) {
	telemetry.WithProfilingLabels(context.Background(), map[string]string{
		"controller": "RecommendationHandler",
	}, func(outer context.Context) {
		telemetry.WithProfilingLabels(outer, map[string]string{
			"region": "db_query",
		}, func(inner context.Context) {
			v, ok := pprof.Label(inner, "controller")
			require.True(t, ok, "outer label should survive nesting")
			assert.Equal(t, "RecommendationHandler", v)

			v, ok = pprof.Label(inner, "region")
			require.True(t, ok)
			assert.Equal(t, "db_query", v)
		})
	})
}

func TestConcurrentProfilingLabels(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			telemetry.WithProfilingLabels(context.Background(), map[string]string{
				"controller": "SearchHandler",
				"method":     "GET",
			}, func(c context.Context) {
				_, ok := pprof.Label(c, "controller")
				assert.True(t, ok)
			})
		}()
	}
	wg.Wait()
}
