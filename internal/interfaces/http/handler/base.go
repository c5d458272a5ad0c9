// Package handler contains the HTTP handlers behind the platform API's
// guarded routes.
package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adebold/Commerce-Studio-sub022/internal/domain/shared"
	"github.com/adebold/Commerce-Studio-sub022/internal/interfaces/http/dto"
	"github.com/adebold/Commerce-Studio-sub022/internal/interfaces/http/guard"
	"github.com/adebold/Commerce-Studio-sub022/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// tenantID reads the validated tenant header. Handlers run behind the
// tenant guard, so the value is present and well-formed by the time a
// handler executes.
func tenantID(c *gin.Context) string {
	return c.GetHeader(guard.HeaderTenantID)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(code, message, middleware.GetRequestID(c)))
}

// ErrorWithCode sends an error response, deriving the status from the code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// normalizeDomainCode maps domain error codes onto the envelope code set.
// Domain codes follow a small grammar: *_NOT_FOUND reads as a missing
// resource, INVALID_* as rejected input.
func normalizeDomainCode(code string) string {
	if _, known := dto.ErrorCodeHTTPStatus[code]; known {
		return code
	}
	switch {
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return dto.ErrCodeNotFound
	case strings.HasPrefix(code, "INVALID_"):
		return dto.ErrCodeValidationError
	default:
		return dto.ErrCodeInternal
	}
}

// HandleError converts service errors to HTTP responses. Domain errors map
// by code; anything else is an opaque 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := normalizeDomainCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), code, domainErr.Message)
		return
	}

	h.InternalError(c, "An unexpected error occurred")
}

// BindJSON binds the request body, replying with a validation envelope on
// failure. Returns false when the request has already been answered.
func (h *BaseHandler) BindJSON(c *gin.Context, target any) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}
