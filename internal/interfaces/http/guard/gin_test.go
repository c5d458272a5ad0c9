package guard

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/adebold/Commerce-Studio-sub022/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var envelope dto.ErrorResponse
	decoder := json.NewDecoder(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, decoder.Decode(&envelope))
	require.False(t, decoder.More(), "response must contain exactly one JSON document")
	return envelope
}

func TestChain(t *testing.T) {
	t.Run("halting verdict writes the envelope and skips the handler", func(t *testing.T) {
		handlerCalls := 0
		engine := gin.New()
		engine.GET("/api/recommendations/trending", Chain(Tenant()), func(c *gin.Context) {
			handlerCalls++
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})

		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recommendations/trending", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, handlerCalls, "handler must not run after a halt")

		envelope := decodeEnvelope(t, rec)
		assert.False(t, envelope.Success)
		assert.Equal(t, dto.ErrCodeMissingTenantID, envelope.Code)
	})

	t.Run("passing chain reaches the handler exactly once", func(t *testing.T) {
		handlerCalls := 0
		engine := gin.New()
		engine.GET("/api/recommendations/trending", Chain(Tenant()), func(c *gin.Context) {
			handlerCalls++
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})

		req := httptest.NewRequest(http.MethodGet, "/api/recommendations/trending", nil)
		req.Header.Set(HeaderTenantID, "tenant-1")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, handlerCalls)
	})

	t.Run("guards run in order so tenant halts before body checks", func(t *testing.T) {
		engine := gin.New()
		engine.POST("/api/recommendations/track-view", Chain(Tenant(), BodyFields("productId", "userId")), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/recommendations/track-view", strings.NewReader(`{}`)))

		envelope := decodeEnvelope(t, rec)
		assert.Equal(t, dto.ErrCodeMissingTenantID, envelope.Code)
	})

	t.Run("restores the body for handler binding", func(t *testing.T) {
		type trackViewRequest struct {
			ProductID string `json:"productId"`
			UserID    string `json:"userId"`
		}

		var bound trackViewRequest
		engine := gin.New()
		engine.POST("/api/recommendations/track-view", Chain(Tenant(), BodyFields("productId", "userId")), func(c *gin.Context) {
			require.NoError(t, c.ShouldBindJSON(&bound))
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodPost, "/api/recommendations/track-view", strings.NewReader(`{"productId":"p-1","userId":"u-1"}`))
		req.Header.Set(HeaderTenantID, "tenant-1")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "p-1", bound.ProductID)
		assert.Equal(t, "u-1", bound.UserID)
	})

	t.Run("echoes the request id from the gin context", func(t *testing.T) {
		engine := gin.New()
		engine.Use(func(c *gin.Context) {
			c.Set(requestIDKey, "rid-123")
			c.Next()
		})
		engine.GET("/api/recommendations/trending", Chain(Tenant()), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recommendations/trending", nil))

		envelope := decodeEnvelope(t, rec)
		assert.Equal(t, "rid-123", envelope.RequestID)
	})

	t.Run("writes exactly one response on every branch", func(t *testing.T) {
		engine := gin.New()
		engine.POST("/api/recommendations/feedback",
			Chain(Tenant(), APIKey(), BodyFields("userId", "productId", "rating")),
			func(c *gin.Context) {
				c.JSON(http.StatusCreated, gin.H{"ok": true})
			},
		)

		cases := []struct {
			name       string
			headers    map[string]string
			body       string
			wantStatus int
		}{
			{"tenant halt", nil, `{}`, http.StatusBadRequest},
			{"api key halt", map[string]string{HeaderTenantID: "tenant-1"}, `{}`, http.StatusUnauthorized},
			{"body halt", map[string]string{HeaderTenantID: "tenant-1", HeaderAPIKey: "k.s"}, `{}`, http.StatusBadRequest},
			{"pass through", map[string]string{HeaderTenantID: "tenant-1", HeaderAPIKey: "k.s"}, `{"userId":"u","productId":"p","rating":5}`, http.StatusCreated},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				req := httptest.NewRequest(http.MethodPost, "/api/recommendations/feedback", strings.NewReader(tc.body))
				for name, value := range tc.headers {
					req.Header.Set(name, value)
				}
				rec := httptest.NewRecorder()
				engine.ServeHTTP(rec, req)

				assert.Equal(t, tc.wantStatus, rec.Code)

				decoder := json.NewDecoder(bytes.NewReader(rec.Body.Bytes()))
				var doc map[string]any
				require.NoError(t, decoder.Decode(&doc))
				assert.False(t, decoder.More(), "exactly one JSON document per response")
			})
		}
	})
}
