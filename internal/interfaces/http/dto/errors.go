package dto

import "net/http"

// Error code constants organized by category. Codes are stable strings;
// storefront plugins and portal clients branch on them, so renaming any of
// these is a breaking API change.

// Tenancy error codes
const (
	// ErrCodeMissingTenantID is used when the tenant header is absent
	ErrCodeMissingTenantID = "MISSING_TENANT_ID"
	// ErrCodeInvalidTenantID is used when the tenant header fails the
	// allowed character class (ASCII letters, digits, underscore, hyphen)
	ErrCodeInvalidTenantID = "INVALID_TENANT_ID"
)

// Credential error codes
const (
	// ErrCodeMissingAPIKey is used when the API key header is absent
	ErrCodeMissingAPIKey = "MISSING_API_KEY"
	// ErrCodeInvalidAPIKey is used when a presented API key fails verification
	ErrCodeInvalidAPIKey = "INVALID_API_KEY"
	// ErrCodeAPIKeyRevoked is used when the API key belongs to a deactivated client
	ErrCodeAPIKeyRevoked = "API_KEY_REVOKED"
	// ErrCodeInvalidCredentials is used when client credentials fail verification
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	// ErrCodeMissingToken is used when a bearer token is required but absent
	ErrCodeMissingToken = "MISSING_TOKEN"
	// ErrCodeTokenInvalid is used when the bearer token fails verification
	ErrCodeTokenInvalid = "TOKEN_INVALID"
	// ErrCodeTokenExpired is used when the bearer token has expired
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
)

// Payload error codes
const (
	// ErrCodeMissingRequiredFields is used when declared body fields are absent
	ErrCodeMissingRequiredFields = "MISSING_REQUIRED_FIELDS"
	// ErrCodeMissingRequiredParams is used when declared query params are absent
	ErrCodeMissingRequiredParams = "MISSING_REQUIRED_PARAMS"
	// ErrCodeValidationError is used when a bound payload fails field validation
	ErrCodeValidationError = "VALIDATION_ERROR"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "INVALID_JSON"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "INVALID_INPUT"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodePayloadTooLarge is used when the request body exceeds the limit
	ErrCodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
)

// Authorization error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is used when the caller lacks permission
	ErrCodeForbidden = "FORBIDDEN"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "INVALID_STATE"
)

// Throttling and server error codes
const (
	// ErrCodeRateLimited is used when the rate limit is exceeded
	ErrCodeRateLimited = "RATE_LIMITED"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeServiceUnavailable is used when a dependency is down
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// Tenancy -> 400 Bad Request
	ErrCodeMissingTenantID: http.StatusBadRequest,
	ErrCodeInvalidTenantID: http.StatusBadRequest,

	// Credentials
	ErrCodeMissingAPIKey:      http.StatusUnauthorized,
	ErrCodeInvalidAPIKey:      http.StatusUnauthorized,
	ErrCodeAPIKeyRevoked:      http.StatusForbidden,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeMissingToken:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,

	// Payload -> 400 Bad Request
	ErrCodeMissingRequiredFields: http.StatusBadRequest,
	ErrCodeMissingRequiredParams: http.StatusBadRequest,
	ErrCodeValidationError:       http.StatusBadRequest,
	ErrCodeInvalidJSON:           http.StatusBadRequest,
	ErrCodeInvalidInput:          http.StatusBadRequest,
	ErrCodeBadRequest:            http.StatusBadRequest,
	ErrCodePayloadTooLarge:       http.StatusRequestEntityTooLarge,

	// Authorization
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	// Resources
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeInvalidState:        http.StatusUnprocessableEntity,

	// Throttling and server errors
	ErrCodeRateLimited:        http.StatusTooManyRequests,
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
