package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{"missing tenant id maps to 400", ErrCodeMissingTenantID, http.StatusBadRequest},
		{"invalid tenant id maps to 400", ErrCodeInvalidTenantID, http.StatusBadRequest},
		{"missing api key maps to 401", ErrCodeMissingAPIKey, http.StatusUnauthorized},
		{"revoked api key maps to 403", ErrCodeAPIKeyRevoked, http.StatusForbidden},
		{"missing required fields maps to 400", ErrCodeMissingRequiredFields, http.StatusBadRequest},
		{"missing required params maps to 400", ErrCodeMissingRequiredParams, http.StatusBadRequest},
		{"not found maps to 404", ErrCodeNotFound, http.StatusNotFound},
		{"already exists maps to 409", ErrCodeAlreadyExists, http.StatusConflict},
		{"rate limited maps to 429", ErrCodeRateLimited, http.StatusTooManyRequests},
		{"internal maps to 500", ErrCodeInternal, http.StatusInternalServerError},
		{"unknown code falls back to 500", "SOMETHING_ELSE", http.StatusInternalServerError},
		{"empty code falls back to 500", "", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestErrorCodesAreClientInput4xx(t *testing.T) {
	// The validation-layer codes must never map to a 5xx status; they are
	// client-input errors and are never retried automatically.
	validationCodes := []string{
		ErrCodeMissingTenantID,
		ErrCodeInvalidTenantID,
		ErrCodeMissingAPIKey,
		ErrCodeMissingRequiredFields,
		ErrCodeMissingRequiredParams,
	}
	for _, code := range validationCodes {
		status := GetHTTPStatus(code)
		assert.GreaterOrEqual(t, status, 400, "code %s", code)
		assert.Less(t, status, 500, "code %s", code)
	}
}

func TestNewErrorResponseShape(t *testing.T) {
	resp := NewErrorResponse(ErrCodeMissingTenantID, "Tenant ID header is required", "req-123")

	assert.False(t, resp.Success)
	assert.Equal(t, "Tenant ID header is required", resp.Error)
	assert.Equal(t, ErrCodeMissingTenantID, resp.Code)
	assert.Equal(t, "req-123", resp.RequestID)
}

func TestErrorResponseJSONKeys(t *testing.T) {
	// The wire shape is flat and fixed: success, error, code, requestId.
	resp := NewErrorResponse(ErrCodeMissingAPIKey, "API key is required", "req-9")

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	require.Len(t, decoded, 4)
	assert.Equal(t, false, decoded["success"])
	assert.Equal(t, "API key is required", decoded["error"])
	assert.Equal(t, "MISSING_API_KEY", decoded["code"])
	assert.Equal(t, "req-9", decoded["requestId"])
}

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse(map[string]string{"id": "p-1"})

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Meta)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	tests := []struct {
		name          string
		total         int64
		page          int
		pageSize      int
		expectedPages int
	}{
		{"exact pages", 40, 1, 20, 2},
		{"partial last page", 41, 1, 20, 3},
		{"single page", 5, 1, 20, 1},
		{"empty result", 0, 1, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewSuccessResponseWithMeta([]string{}, tt.total, tt.page, tt.pageSize)
			require.NotNil(t, resp.Meta)
			assert.Equal(t, tt.total, resp.Meta.Total)
			assert.Equal(t, tt.expectedPages, resp.Meta.TotalPages)
		})
	}
}

func TestManifestJSONShape(t *testing.T) {
	m := Manifest{
		Message: "Search service",
		Endpoints: []string{
			"GET /api/search/products",
			"GET /api/search/suggestions",
		},
	}

	raw, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	require.Len(t, decoded, 2)
	assert.Equal(t, "Search service", decoded["message"])
	assert.Len(t, decoded["endpoints"], 2)
}
