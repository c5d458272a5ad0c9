package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestProfiling(t *testing.T) {
	t.Run("disabled profiling passes through", func(t *testing.T) {
		router := gin.New()
		router.Use(Profiling(ProfilingConfig{Enabled: false}))
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("enabled profiling is transparent to handlers", func(t *testing.T) {
		router := gin.New()
		router.Use(Profiling(ProfilingConfig{Enabled: true}))
		router.GET("/api/search/products", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		req := httptest.NewRequest("GET", "/api/search/products", nil)
		req.Header.Set("X-Tenant-ID", "tenant-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", w.Body.String())
	})

	t.Run("skip paths run without labels", func(t *testing.T) {
		router := gin.New()
		router.Use(Profiling(ProfilingConfig{Enabled: true, SkipPaths: []string{"/healthz"}}))
		router.GET("/healthz", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		req := httptest.NewRequest("GET", "/healthz", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestControllerFromRoute(t *testing.T) {
	tests := []struct {
		route string
		want  string
	}{
		{"/api/recommendations/trending", "recommendations"},
		{"/api/search/products", "search"},
		{"/api/products/:productId/variants", "products"},
		{"/api/auth/token", "auth"},
		{"/healthz", "system"},
		{"/api", "system"},
		{"unmatched", "system"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, controllerFromRoute(tt.route), "route %s", tt.route)
	}
}
