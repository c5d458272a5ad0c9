package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adebold/Commerce-Studio-sub022/internal/infrastructure/telemetry"
)

// ProfilingConfig configures the profiling label middleware.
type ProfilingConfig struct {
	// Enabled controls whether labels are attached at all.
	Enabled bool
	// SkipPaths are exact request paths that run without profiling labels.
	SkipPaths []string
}

// Profiling returns middleware that attaches route, method and tenant
// labels to the goroutine for the duration of the request, so continuous
// profiles can be sliced per endpoint and tenant.
func Profiling(cfg ProfilingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
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

		labels := extractProfilingLabels(c)
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

// extractProfilingLabels derives the label set for the current request.
// Tenant resolution follows the same trust order as tracing and metrics.
func extractProfilingLabels(c *gin.Context) map[string]string {
	route := getRoutePattern(c)
	controller := controllerFromRoute(route)

	tenantID := GetJWTTenantID(c)
	if tenantID == "" {
		headerTenantID := c.GetHeader("X-Tenant-ID")
		if headerTenantID != "" && len(headerTenantID) <= MaxTenantIDLength && tenantSlugRegex.MatchString(headerTenantID) {
			tenantID = headerTenantID
		}
	}

	return telemetry.HTTPRequestLabels(controller, route, c.Request.Method, tenantID)
}

// controllerFromRoute names the owning handler group by the first path
// segment after the API prefix ("/api/search/products" -> "search").
func controllerFromRoute(route string) string {
	trimmed := strings.TrimPrefix(route, "/api/")
	if trimmed == route {
		return "system"
	}
	if idx := strings.IndexByte(trimmed, '/'); idx > 0 {
		trimmed = trimmed[:idx]
	}
	if trimmed == "" {
		return "system"
	}
	return trimmed
}
