package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adebold/Commerce-Studio-sub022/internal/application/recommendation"
	"github.com/adebold/Commerce-Studio-sub022/internal/interfaces/http/dto"
)

// RecommendationHandler handles recommendation API endpoints
type RecommendationHandler struct {
	BaseHandler
	service *recommendation.Service
}

// NewRecommendationHandler creates a new RecommendationHandler
func NewRecommendationHandler(service *recommendation.Service) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

// limitQuery parses the optional ?limit= parameter; the service clamps it
func limitQuery(c *gin.Context) int {
	limit, _ := strconv.Atoi(c.Query("limit"))
	return limit
}

// Trending godoc
// @ID           getTrendingRecommendations
// @Summary      Get trending products
// @Description  Returns the tenant's most viewed products, highest view count first
// @Tags         recommendations
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant identifier"
// @Param        limit query int false "Maximum results (default 10, max 50)"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.ErrorResponse
// @Router       /recommendations/trending [get]
func (h *RecommendationHandler) Trending(c *gin.Context) {
	result, err := h.service.Trending(c.Request.Context(), tenantID(c), limitQuery(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RecentlyViewed godoc
// @ID           getRecentlyViewedRecommendations
// @Summary      Get a user's recently viewed products
// @Description  Returns the user's recently viewed products, newest first, de-duplicated
// @Tags         recommendations
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant identifier"
// @Param        userId path string true "Storefront user identifier"
// @Param        limit query int false "Maximum results (default 10, max 50)"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.ErrorResponse
// @Router       /recommendations/recently-viewed/{userId} [get]
func (h *RecommendationHandler) RecentlyViewed(c *gin.Context) {
	result, err := h.service.RecentlyViewed(c.Request.Context(), tenantID(c), c.Param("userId"), limitQuery(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Similar godoc
// @ID           getSimilarRecommendations
// @Summary      Get products similar to a product
// @Description  Returns same-category products, padded with same-brand products
// @Tags         recommendations
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant identifier"
// @Param        productId path string true "Anchor product ID"
// @Param        limit query int false "Maximum results (default 10, max 50)"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /recommendations/similar/{productId} [get]
func (h *RecommendationHandler) Similar(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.ErrorWithCode(c, dto.ErrCodeValidationError, "Product ID must be a valid UUID")
		return
	}

	result, err := h.service.Similar(c.Request.Context(), tenantID(c), productID, limitQuery(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// TrackView godoc
// @ID           trackProductView
// @Summary      Record a product view
// @Description  Appends a durable view event and bumps the trending counters
// @Tags         recommendations
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant identifier"
// @Param        request body recommendation.TrackViewRequest true "View to record"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /recommendations/track-view [post]
func (h *RecommendationHandler) TrackView(c *gin.Context) {
	var req recommendation.TrackViewRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.TrackView(c.Request.Context(), tenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// SubmitFeedback godoc
// @ID           submitProductFeedback
// @Summary      Submit product feedback
// @Description  Stores a 1-5 rating with an optional comment
// @Tags         recommendations
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant identifier"
// @Param        request body recommendation.SubmitFeedbackRequest true "Feedback to store"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /recommendations/feedback [post]
func (h *RecommendationHandler) SubmitFeedback(c *gin.Context) {
	var req recommendation.SubmitFeedbackRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.SubmitFeedback(c.Request.Context(), tenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
