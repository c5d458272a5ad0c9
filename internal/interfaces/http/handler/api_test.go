package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/adebold/Commerce-Studio-sub022/internal/application/catalog"
	recommendationapp "github.com/adebold/Commerce-Studio-sub022/internal/application/recommendation"
	searchapp "github.com/adebold/Commerce-Studio-sub022/internal/application/search"
	"github.com/adebold/Commerce-Studio-sub022/internal/domain/catalog"
	"github.com/adebold/Commerce-Studio-sub022/internal/domain/recommendation"
	"github.com/adebold/Commerce-Studio-sub022/internal/domain/shared"
	"github.com/adebold/Commerce-Studio-sub022/internal/infrastructure/cache"
	"github.com/adebold/Commerce-Studio-sub022/internal/interfaces/http/dto"
	"github.com/adebold/Commerce-Studio-sub022/internal/interfaces/http/guard"
	"github.com/adebold/Commerce-Studio-sub022/internal/interfaces/http/middleware"
	"github.com/adebold/Commerce-Studio-sub022/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubProductRepo is a hand-written in-memory ProductRepository with a call
// counter, so tests can assert a halted guard never reached the data layer.
type stubProductRepo struct {
	products map[uuid.UUID]catalog.Product
	calls    int
}

func newStubProductRepo(products ...catalog.Product) *stubProductRepo {
	byID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &stubProductRepo{products: byID}
}

func (r *stubProductRepo) FindByID(_ context.Context, tenantID string, id uuid.UUID) (*catalog.Product, error) {
	r.calls++
	p, ok := r.products[id]
	if !ok || p.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return &p, nil
}

func (r *stubProductRepo) FindByIDs(_ context.Context, tenantID string, ids []uuid.UUID) ([]catalog.Product, error) {
	r.calls++
	var out []catalog.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok && p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindBySKU(_ context.Context, tenantID, sku string) (*catalog.Product, error) {
	r.calls++
	for _, p := range r.products {
		if p.TenantID == tenantID && p.SKU == sku {
			return &p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubProductRepo) FindActive(_ context.Context, tenantID string) ([]catalog.Product, error) {
	r.calls++
	var out []catalog.Product
	for _, p := range r.products {
		if p.TenantID == tenantID && p.IsActive() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindByCategory(_ context.Context, tenantID, category string, exclude uuid.UUID, limit int) ([]catalog.Product, error) {
	r.calls++
	var out []catalog.Product
	for _, p := range r.products {
		if p.TenantID == tenantID && p.Category == category && p.ID != exclude && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindByBrand(_ context.Context, tenantID, brand string, exclude uuid.UUID, limit int) ([]catalog.Product, error) {
	r.calls++
	var out []catalog.Product
	for _, p := range r.products {
		if p.TenantID == tenantID && p.Brand == brand && p.ID != exclude && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Search(_ context.Context, tenantID, _ string, _, _ int) ([]catalog.Product, int64, error) {
	r.calls++
	var out []catalog.Product
	for _, p := range r.products {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Brands(_ context.Context, _ string) ([]string, error) {
	r.calls++
	return []string{}, nil
}

func (r *stubProductRepo) Categories(_ context.Context, _ string) ([]string, error) {
	r.calls++
	return []string{}, nil
}

func (r *stubProductRepo) ExistsBySKU(_ context.Context, _, _ string) (bool, error) {
	r.calls++
	return false, nil
}

func (r *stubProductRepo) Save(_ context.Context, p *catalog.Product) error {
	r.calls++
	r.products[p.ID] = *p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, _ string, id uuid.UUID) error {
	r.calls++
	delete(r.products, id)
	return nil
}

type stubViewEventRepo struct {
	created []recommendation.ViewEvent
}

func (r *stubViewEventRepo) Create(_ context.Context, event *recommendation.ViewEvent) error {
	r.created = append(r.created, *event)
	return nil
}

func (r *stubViewEventRepo) FindRecentByUser(_ context.Context, tenantID, userID string, limit int) ([]recommendation.ViewEvent, error) {
	var out []recommendation.ViewEvent
	for i := len(r.created) - 1; i >= 0 && len(out) < limit; i-- {
		ev := r.created[i]
		if ev.TenantID == tenantID && ev.UserID == userID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (r *stubViewEventRepo) CountByProduct(_ context.Context, _ string, _ uuid.UUID) (int64, error) {
	return int64(len(r.created)), nil
}

type stubFeedbackRepo struct {
	created []recommendation.FeedbackEntry
}

func (r *stubFeedbackRepo) Create(_ context.Context, entry *recommendation.FeedbackEntry) error {
	r.created = append(r.created, *entry)
	return nil
}

func (r *stubFeedbackRepo) FindByProduct(_ context.Context, _ string, _ uuid.UUID, _ int) ([]recommendation.FeedbackEntry, error) {
	return nil, nil
}

func (r *stubFeedbackRepo) AverageRating(_ context.Context, _ string, _ uuid.UUID) (float64, error) {
	return 0, nil
}

type stubVariantRepo struct {
	variants map[uuid.UUID]catalog.Variant
}

func (r *stubVariantRepo) FindByID(_ context.Context, tenantID string, id uuid.UUID) (*catalog.Variant, error) {
	v, ok := r.variants[id]
	if !ok || v.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return &v, nil
}

func (r *stubVariantRepo) FindByProduct(_ context.Context, tenantID string, productID uuid.UUID) ([]catalog.Variant, error) {
	var out []catalog.Variant
	for _, v := range r.variants {
		if v.TenantID == tenantID && v.ProductID == productID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *stubVariantRepo) ExistsBySKU(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

func (r *stubVariantRepo) Save(_ context.Context, v *catalog.Variant) error {
	if r.variants == nil {
		r.variants = map[uuid.UUID]catalog.Variant{}
	}
	r.variants[v.ID] = *v
	return nil
}

func (r *stubVariantRepo) Delete(_ context.Context, _ string, id uuid.UUID) error {
	delete(r.variants, id)
	return nil
}

// testAPI assembles the full route tables over stub storage, mirroring the
// production wiring in cmd/server.
type testAPI struct {
	engine   *gin.Engine
	products *stubProductRepo
	events   *stubViewEventRepo
	feedback *stubFeedbackRepo
}

func newTestAPI(t *testing.T, products ...catalog.Product) *testAPI {
	t.Helper()

	productRepo := newStubProductRepo(products...)
	eventRepo := &stubViewEventRepo{}
	feedbackRepo := &stubFeedbackRepo{}
	variantRepo := &stubVariantRepo{}
	viewStore := cache.NewInMemoryViewStore()

	recommendationHandler := NewRecommendationHandler(
		recommendationapp.NewService(viewStore, eventRepo, feedbackRepo, productRepo))
	searchHandler := NewSearchHandler(searchapp.NewService(productRepo))
	variantHandler := NewVariantHandler(catalogapp.NewVariantService(variantRepo, productRepo))

	engine := gin.New()
	engine.Use(middleware.RequestID())
	r := router.NewRouter(engine, "Commerce Studio Platform API")

	recommendations := router.NewResourceGroup("recommendations", "/recommendations", "Recommendations API")
	recommendations.Guard(guard.Tenant())
	recommendations.GET("/trending", nil, recommendationHandler.Trending)
	recommendations.GET("/recently-viewed/:userId", nil, recommendationHandler.RecentlyViewed)
	recommendations.GET("/similar/:productId", nil, recommendationHandler.Similar)
	recommendations.POST("/track-view", []guard.Guard{guard.BodyFields("productId", "userId")}, recommendationHandler.TrackView)
	recommendations.POST("/feedback", []guard.Guard{guard.BodyFields("userId", "productId", "rating")}, recommendationHandler.SubmitFeedback)

	search := router.NewResourceGroup("search", "/search", "Search API")
	search.Guard(guard.Tenant())
	search.GET("/products", []guard.Guard{guard.QueryParams("q")}, searchHandler.Products)
	search.GET("/suggestions", []guard.Guard{guard.QueryParams("q")}, searchHandler.Suggestions)
	search.GET("/filters", nil, searchHandler.Filters)
	search.POST("/reindex", []guard.Guard{guard.APIKey()}, searchHandler.Reindex)

	variants := router.NewResourceGroup("variants", "/products/:productId/variants", "Product Variants API")
	variants.Guard(guard.Tenant())
	variants.GET("/:variantId", nil, variantHandler.Get)
	variants.POST("", []guard.Guard{guard.APIKey(), guard.BodyFields("sku", "price")}, variantHandler.Create)
	variants.DELETE("/:variantId", []guard.Guard{guard.APIKey()}, variantHandler.Delete)

	r.Register(recommendations).Register(search).Register(variants)
	r.Setup()

	return &testAPI{
		engine:   engine,
		products: productRepo,
		events:   eventRepo,
		feedback: feedbackRepo,
	}
}

func (a *testAPI) do(method, path, tenantID string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tenantID != "" {
		req.Header.Set(guard.HeaderTenantID, tenantID)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func testProduct(t *testing.T, tenantID, sku, name string) catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(tenantID, sku, name)
	require.NoError(t, err)
	return *p
}

func TestTenantGuardOnRecommendations(t *testing.T) {
	t.Run("missing tenant header is rejected before the data layer", func(t *testing.T) {
		api := newTestAPI(t)

		w := api.do("GET", "/api/recommendations/trending", "", nil)

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeMissingTenantID, resp.Code)
		assert.NotEmpty(t, resp.RequestID)
		assert.Zero(t, api.products.calls)
	})

	t.Run("malformed tenant id is rejected with the value in the message", func(t *testing.T) {
		api := newTestAPI(t)

		w := api.do("GET", "/api/recommendations/trending", "tenant 1", nil)

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeInvalidTenantID, resp.Code)
		assert.Contains(t, resp.Error, "tenant 1")
		assert.Zero(t, api.products.calls)
	})

	t.Run("well-formed tenant id reaches the handler", func(t *testing.T) {
		api := newTestAPI(t)

		w := api.do("GET", "/api/recommendations/trending", "tenant-1", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
	})
}

func TestTrackViewBodyGuard(t *testing.T) {
	t.Run("empty body names both missing fields in declared order", func(t *testing.T) {
		api := newTestAPI(t)

		w := api.do("POST", "/api/recommendations/track-view", "tenant-1", map[string]any{})

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeMissingRequiredFields, resp.Code)
		assert.Contains(t, resp.Error, "productId, userId")
		assert.Empty(t, api.events.created)
	})

	t.Run("valid body records a durable view event", func(t *testing.T) {
		product := testProduct(t, "tenant-1", "SKU-100", "Aviator Classic")
		api := newTestAPI(t, product)

		w := api.do("POST", "/api/recommendations/track-view", "tenant-1", map[string]any{
			"productId": product.ID.String(),
			"userId":    "user-7",
		})

		require.Equal(t, http.StatusCreated, w.Code)
		require.Len(t, api.events.created, 1)
		assert.Equal(t, product.ID, api.events.created[0].ProductID)
		assert.Equal(t, "user-7", api.events.created[0].UserID)
	})
}

func TestFeedbackFalsyRating(t *testing.T) {
	// rating: 0 counts as missing, same as false or "" would
	api := newTestAPI(t)

	w := api.do("POST", "/api/recommendations/feedback", "tenant-1", map[string]any{
		"userId":    "user-7",
		"productId": uuid.NewString(),
		"rating":    0,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrCodeMissingRequiredFields, resp.Code)
	assert.Contains(t, resp.Error, "rating")
	assert.NotContains(t, resp.Error, "userId")
	assert.Empty(t, api.feedback.created)
}

func TestSearchDiscoveryManifest(t *testing.T) {
	api := newTestAPI(t)

	w := api.do("GET", "/api/search", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var manifest dto.Manifest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &manifest))
	assert.Equal(t, "Search API", manifest.Message)
	require.Len(t, manifest.Endpoints, 4)
	assert.Equal(t, []string{
		"GET /api/search/products",
		"GET /api/search/suggestions",
		"GET /api/search/filters",
		"POST /api/search/reindex",
	}, manifest.Endpoints)
}

func TestVariantsDiscoveryManifest(t *testing.T) {
	api := newTestAPI(t)

	w := api.do("GET", "/api/products/"+uuid.NewString()+"/variants", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var manifest dto.Manifest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &manifest))
	assert.Equal(t, "Product Variants API", manifest.Message)
	assert.NotEmpty(t, manifest.Endpoints)
}

func TestSearchGuards(t *testing.T) {
	t.Run("products without q is rejected", func(t *testing.T) {
		api := newTestAPI(t)

		w := api.do("GET", "/api/search/products", "tenant-1", nil)

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeMissingRequiredParams, resp.Code)
		assert.Contains(t, resp.Error, "q")
	})

	t.Run("q=0 is accepted for query params", func(t *testing.T) {
		api := newTestAPI(t)

		w := api.do("GET", "/api/search/products?q=0", "tenant-1", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("reindex without api key is rejected with 401", func(t *testing.T) {
		api := newTestAPI(t)

		w := api.do("POST", "/api/search/reindex", "tenant-1", nil)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeMissingAPIKey, resp.Code)
	})

	t.Run("tenant guard runs before the api key guard", func(t *testing.T) {
		api := newTestAPI(t)

		w := api.do("POST", "/api/search/reindex", "", nil)

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeMissingTenantID, resp.Code)
	})
}

func TestRequestIDEchoedInErrorEnvelope(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest("GET", "/api/recommendations/trending", nil)
	req.Header.Set("X-Request-ID", "req-fixed-123")
	w := httptest.NewRecorder()
	api.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "req-fixed-123", resp.RequestID)
	assert.Equal(t, "req-fixed-123", w.Header().Get("X-Request-ID"))
}

func TestGuardVerdictIdempotence(t *testing.T) {
	// The same request replayed yields the identical verdict and body
	api := newTestAPI(t)

	first := api.do("POST", "/api/recommendations/track-view", "tenant-1", map[string]any{"productId": ""})
	second := api.do("POST", "/api/recommendations/track-view", "tenant-1", map[string]any{"productId": ""})

	assert.Equal(t, first.Code, second.Code)
	firstResp := decodeError(t, first)
	secondResp := decodeError(t, second)
	assert.Equal(t, firstResp.Code, secondResp.Code)
	assert.Equal(t, firstResp.Error, secondResp.Error)
}
