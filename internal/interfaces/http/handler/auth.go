package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/adebold/Commerce-Studio-sub022/internal/application/identity"
	"github.com/adebold/Commerce-Studio-sub022/internal/interfaces/http/middleware"
)

// AuthHandler handles the token API endpoints
type AuthHandler struct {
	BaseHandler
	service *identity.TokenService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service *identity.TokenService) *AuthHandler {
	return &AuthHandler{service: service}
}

// IssueToken godoc
// @ID           issueToken
// @Summary      Issue a token pair
// @Description  Exchanges client credentials for an access and refresh token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant identifier"
// @Param        request body identity.IssueTokenRequest true "Client credentials"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Router       /auth/token [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req identity.IssueTokenRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.IssueToken(c.Request.Context(), tenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Refresh godoc
// @ID           refreshToken
// @Summary      Refresh a token pair
// @Description  Exchanges a valid refresh token for a new token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant identifier"
// @Param        request body identity.RefreshTokenRequest true "Refresh token"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req identity.RefreshTokenRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Refresh(c.Request.Context(), tenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Introspect godoc
// @ID           introspectToken
// @Summary      Introspect the presented access token
// @Description  Reports the claims of the bearer token used on the request
// @Tags         auth
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant identifier"
// @Param        Authorization header string true "Bearer access token"
// @Success      200 {object} dto.Response
// @Failure      401 {object} dto.ErrorResponse
// @Router       /auth/introspect [get]
func (h *AuthHandler) Introspect(c *gin.Context) {
	h.Success(c, h.service.Introspect(middleware.GetJWTClaims(c)))
}
