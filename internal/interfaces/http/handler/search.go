package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adebold/Commerce-Studio-sub022/internal/application/search"
)

// SearchHandler handles catalog search API endpoints
type SearchHandler struct {
	BaseHandler
	service *search.Service
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(service *search.Service) *SearchHandler {
	return &SearchHandler{service: service}
}

// Products godoc
// @ID           searchProducts
// @Summary      Search products
// @Description  Normalized substring search over product name, brand and SKU
// @Tags         search
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant identifier"
// @Param        q query string true "Search query"
// @Param        page query int false "1-based page (default 1)"
// @Param        pageSize query int false "Page size (default 20, max 100)"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.ErrorResponse
// @Router       /search/products [get]
func (h *SearchHandler) Products(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))

	result, err := h.service.Products(c.Request.Context(), tenantID(c), c.Query("q"), page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Results, result.Total, result.Page, result.PageSize)
}

// Suggestions godoc
// @ID           searchSuggestions
// @Summary      Get search suggestions
// @Description  Prefix completions from the tenant's suggestion index
// @Tags         search
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant identifier"
// @Param        q query string true "Prefix to complete"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.ErrorResponse
// @Router       /search/suggestions [get]
func (h *SearchHandler) Suggestions(c *gin.Context) {
	result, err := h.service.Suggestions(c.Request.Context(), tenantID(c), c.Query("q"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Filters godoc
// @ID           searchFilters
// @Summary      Get search filters
// @Description  Distinct brands and categories of the tenant's active products
// @Tags         search
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant identifier"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.ErrorResponse
// @Router       /search/filters [get]
func (h *SearchHandler) Filters(c *gin.Context) {
	result, err := h.service.Filters(c.Request.Context(), tenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Reindex godoc
// @ID           reindexSearch
// @Summary      Rebuild the suggestion index
// @Description  Rebuilds the tenant's suggestion index from its active catalog
// @Tags         search
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant identifier"
// @Param        X-API-Key header string true "API key (clientID.secret)"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Router       /search/reindex [post]
func (h *SearchHandler) Reindex(c *gin.Context) {
	result, err := h.service.Reindex(c.Request.Context(), tenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
