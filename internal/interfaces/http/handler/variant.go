package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adebold/Commerce-Studio-sub022/internal/application/catalog"
	"github.com/adebold/Commerce-Studio-sub022/internal/interfaces/http/dto"
)

// VariantHandler handles product variant API endpoints
type VariantHandler struct {
	BaseHandler
	service *catalog.VariantService
}

// NewVariantHandler creates a new VariantHandler
func NewVariantHandler(service *catalog.VariantService) *VariantHandler {
	return &VariantHandler{service: service}
}

// productIDParam parses the :productId path parameter
func (h *VariantHandler) productIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.ErrorWithCode(c, dto.ErrCodeValidationError, "Product ID must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

// variantIDParam parses the :variantId path parameter
func (h *VariantHandler) variantIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("variantId"))
	if err != nil {
		h.ErrorWithCode(c, dto.ErrCodeValidationError, "Variant ID must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

// Get godoc
// @ID           getProductVariant
// @Summary      Get a product variant
// @Description  Returns a single variant of a product
// @Tags         variants
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant identifier"
// @Param        productId path string true "Product ID"
// @Param        variantId path string true "Variant ID"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /products/{productId}/variants/{variantId} [get]
func (h *VariantHandler) Get(c *gin.Context) {
	productID, ok := h.productIDParam(c)
	if !ok {
		return
	}
	variantID, ok := h.variantIDParam(c)
	if !ok {
		return
	}

	result, err := h.service.Get(c.Request.Context(), tenantID(c), productID, variantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Create godoc
// @ID           createProductVariant
// @Summary      Create a product variant
// @Description  Adds a variant to an existing product
// @Tags         variants
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant identifier"
// @Param        X-API-Key header string true "API key (clientID.secret)"
// @Param        productId path string true "Product ID"
// @Param        request body catalog.CreateVariantRequest true "Variant to create"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /products/{productId}/variants [post]
func (h *VariantHandler) Create(c *gin.Context) {
	productID, ok := h.productIDParam(c)
	if !ok {
		return
	}

	var req catalog.CreateVariantRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Create(c.Request.Context(), tenantID(c), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Delete godoc
// @ID           deleteProductVariant
// @Summary      Delete a product variant
// @Description  Removes a variant from a product
// @Tags         variants
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant identifier"
// @Param        X-API-Key header string true "API key (clientID.secret)"
// @Param        productId path string true "Product ID"
// @Param        variantId path string true "Variant ID"
// @Success      204 "No Content"
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /products/{productId}/variants/{variantId} [delete]
func (h *VariantHandler) Delete(c *gin.Context) {
	productID, ok := h.productIDParam(c)
	if !ok {
		return
	}
	variantID, ok := h.variantIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), tenantID(c), productID, variantID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
