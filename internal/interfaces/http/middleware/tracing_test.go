package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTracingWithConfig(t *testing.T) {
	t.Run("disabled tracing passes through", func(t *testing.T) {
		router := gin.New()
		router.Use(TracingWithConfig(TracingConfig{Enabled: false}))
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("enabled tracing does not alter response", func(t *testing.T) {
		// Without a configured tracer provider otelgin produces no-op
		// spans; the middleware must still be transparent.
		router := gin.New()
		router.Use(RequestID(), Tracing("test-service"))
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Tenant-ID", "tenant-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", w.Body.String())
	})
}

func TestSpanTenantID(t *testing.T) {
	newCtx := func() (*gin.Context, *httptest.ResponseRecorder) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/test", nil)
		return c, w
	}

	t.Run("token claims win over header", func(t *testing.T) {
		c, _ := newCtx()
		c.Set(JWTTenantIDKey, "token-tenant")
		c.Request.Header.Set("X-Tenant-ID", "header-tenant")

		assert.Equal(t, "token-tenant", spanTenantID(c))
	})

	t.Run("valid header slug accepted", func(t *testing.T) {
		c, _ := newCtx()
		c.Request.Header.Set("X-Tenant-ID", "tenant_01-a")

		assert.Equal(t, "tenant_01-a", spanTenantID(c))
	})

	t.Run("malformed header value never reaches attributes", func(t *testing.T) {
		for _, bad := range []string{"tenant 1", "tenant!", "a/b", "tenant\n1"} {
			c, _ := newCtx()
			c.Request.Header.Set("X-Tenant-ID", bad)
			assert.Empty(t, spanTenantID(c), "value %q must be rejected", bad)
		}
	})

	t.Run("oversized header value rejected", func(t *testing.T) {
		c, _ := newCtx()
		long := make([]byte, MaxTenantIDLength+1)
		for i := range long {
			long[i] = 'a'
		}
		c.Request.Header.Set("X-Tenant-ID", string(long))

		assert.Empty(t, spanTenantID(c))
	})
}

func TestSpanErrorMarker(t *testing.T) {
	// The marker reads the recorded span; with a no-op provider it must
	// simply not panic for any status class.
	for _, status := range []int{200, 400, 401, 403, 404, 429, 500} {
		router := gin.New()
		router.Use(Tracing("test-service"), SpanErrorMarker())
		router.GET("/test", func(c *gin.Context) {
			c.Status(status)
		})

		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, status, w.Code)
	}
}
