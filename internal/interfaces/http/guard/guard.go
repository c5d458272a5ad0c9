package guard

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/adebold/Commerce-Studio-sub022/internal/interfaces/http/dto"
)

// Header names inspected by the guards. Guards validate and store nothing;
// downstream consumers re-read the same headers.
const (
	HeaderTenantID = "X-Tenant-ID"
	HeaderAPIKey   = "X-API-Key"
)

// tenantIDPattern is the platform tenant identifier format. Tenant IDs are
// caller-chosen slugs, not UUIDs.
var tenantIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Guard inspects a buffered request view and returns a verdict. Guards
// perform no I/O and never block; all configuration is bound at construction
// time, so a guard value is safe to share across concurrent requests.
type Guard func(v *RequestView) Verdict

// Run evaluates guards in declared order and returns the first halting
// verdict, or a proceeding verdict when every guard passes.
func Run(view *RequestView, guards []Guard) Verdict {
	for _, g := range guards {
		if verdict := g(view); verdict.Halted() {
			return verdict
		}
	}
	return Proceed()
}

// Tenant returns a guard requiring a well-formed X-Tenant-ID header. The
// guard checks shape only; it does not resolve the tenant or touch storage.
func Tenant() Guard {
	return func(v *RequestView) Verdict {
		tenantID := v.Header(HeaderTenantID)
		if tenantID == "" {
			return Halt(http.StatusBadRequest, dto.NewErrorResponse(
				dto.ErrCodeMissingTenantID,
				"Tenant ID is required. Set the X-Tenant-ID header.",
				v.RequestID,
			))
		}
		if !tenantIDPattern.MatchString(tenantID) {
			return Halt(http.StatusBadRequest, dto.NewErrorResponse(
				dto.ErrCodeInvalidTenantID,
				fmt.Sprintf("Invalid tenant ID %q: only letters, digits, hyphens and underscores are allowed.", tenantID),
				v.RequestID,
			))
		}
		return Proceed()
	}
}

// APIKey returns a guard requiring the X-API-Key header to be present.
// Verifying the key against stored credentials is a separate middleware
// composed after this guard, never folded into it.
func APIKey() Guard {
	return func(v *RequestView) Verdict {
		if v.Header(HeaderAPIKey) == "" {
			return Halt(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.ErrCodeMissingAPIKey,
				"API key is required. Set the X-API-Key header.",
				v.RequestID,
			))
		}
		return Proceed()
	}
}

// BodyFields returns a guard requiring the named top-level JSON body fields.
// A field present as "", 0, false or null counts as missing. The failure
// message names every missing field in declared order, not just the first.
func BodyFields(fields ...string) Guard {
	required := append([]string(nil), fields...)
	return func(v *RequestView) Verdict {
		var missing []string
		for _, name := range required {
			value, ok := v.BodyField(name)
			if !ok || isEmptyValue(value) {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			return Halt(http.StatusBadRequest, dto.NewErrorResponse(
				dto.ErrCodeMissingRequiredFields,
				"Missing required fields: "+strings.Join(missing, ", "),
				v.RequestID,
			))
		}
		return Proceed()
	}
}

// QueryParams returns a guard requiring the named query parameters. Unlike
// body fields, a parameter counts as missing only when absent or empty; "0"
// and "false" are accepted.
func QueryParams(params ...string) Guard {
	required := append([]string(nil), params...)
	return func(v *RequestView) Verdict {
		var missing []string
		for _, name := range required {
			if v.Query(name) == "" {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			return Halt(http.StatusBadRequest, dto.NewErrorResponse(
				dto.ErrCodeMissingRequiredParams,
				"Missing required query parameters: "+strings.Join(missing, ", "),
				v.RequestID,
			))
		}
		return Proceed()
	}
}

// isEmptyValue reports whether a decoded JSON value counts as missing for
// required-field purposes. Zero and false are treated the same as absent, so
// required numeric fields must be sent with non-zero values.
func isEmptyValue(value any) bool {
	switch value := value.(type) {
	case nil:
		return true
	case string:
		return value == ""
	case bool:
		return !value
	case float64:
		return value == 0
	}
	return false
}
