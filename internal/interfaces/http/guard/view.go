package guard

import (
	"encoding/json"
	"net/http"
	"net/url"
)

// RequestView is an immutable snapshot of the request parts that guards
// inspect. The transport adapter builds it once per request with the body
// already read into memory, so guards never touch the connection and can be
// re-run over the same view with the same result.
type RequestView struct {
	Method    string
	Path      string
	RequestID string

	header     http.Header
	query      url.Values
	bodyFields map[string]any
}

// NewRequestView builds a view from pre-read request parts. body may be nil
// for bodyless requests; a body that is not a JSON object yields a view with
// no body fields.
func NewRequestView(method, path, requestID string, header http.Header, query url.Values, body []byte) *RequestView {
	view := &RequestView{
		Method:    method,
		Path:      path,
		RequestID: requestID,
		header:    header,
		query:     query,
	}
	if len(body) > 0 {
		var fields map[string]any
		if err := json.Unmarshal(body, &fields); err == nil {
			view.bodyFields = fields
		}
	}
	return view
}

// Header returns the first value of the named header. Lookup is
// case-insensitive, matching net/http canonicalization.
func (v *RequestView) Header(name string) string {
	if v.header == nil {
		return ""
	}
	return v.header.Get(name)
}

// Query returns the first value of the named query parameter, or "" when the
// parameter is absent.
func (v *RequestView) Query(name string) string {
	if v.query == nil {
		return ""
	}
	return v.query.Get(name)
}

// BodyField returns the named top-level body field and whether the request
// body carried it.
func (v *RequestView) BodyField(name string) (any, bool) {
	value, ok := v.bodyFields[name]
	return value, ok
}
