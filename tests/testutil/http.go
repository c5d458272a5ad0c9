package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The envelope helpers below operate on the raw recorder so they serve
// both handler-level tests built on TestContext and engine-level tests
// that drive the full router with ServeHTTP.

// DecodeJSON parses a response body into a generic map.
func DecodeJSON(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &result), "response body is not valid JSON")
	return result
}

// DecodeData unwraps the data field of a success envelope into T.
func DecodeData[T any](t *testing.T, body []byte) T {
	t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope), "response body is not valid JSON")
	require.True(t, envelope.Success, "expected a success envelope, body: %s", body)

	var data T
	require.NoError(t, json.Unmarshal(envelope.Data, &data), "data field does not match %T", data)
	return data
}

// RequireSuccess asserts the recorder holds a success envelope.
func RequireSuccess(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()

	resp := DecodeJSON(t, rec.Body.Bytes())
	success, _ := resp["success"].(bool)
	require.True(t, success, "expected success envelope, body: %s", rec.Body.String())
	assert.Nil(t, resp["error"], "success envelope must not carry an error")
}

// RequireError asserts the recorder holds an error envelope with the given
// HTTP status and machine-readable code. The envelope is flat: error
// message, code, and request ID sit at the top level.
func RequireError(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int, wantCode string) {
	t.Helper()

	require.Equal(t, wantStatus, rec.Code, "unexpected status, body: %s", rec.Body.String())

	resp := DecodeJSON(t, rec.Body.Bytes())
	success, _ := resp["success"].(bool)
	require.False(t, success, "expected error envelope, body: %s", rec.Body.String())
	assert.Equal(t, wantCode, resp["code"], "unexpected error code")
	assert.NotEmpty(t, resp["error"], "error envelope must carry a message")
}

// JSONResponse parses the handler response body as JSON.
func JSONResponse(t *testing.T, tc *TestContext) map[string]interface{} {
	t.Helper()
	return DecodeJSON(t, tc.ResponseBody())
}

// JSONResponseAs parses the handler response body into T.
func JSONResponseAs[T any](t *testing.T, tc *TestContext) T {
	t.Helper()

	var result T
	require.NoError(t, json.Unmarshal(tc.ResponseBody(), &result), "response body does not match %T", result)
	return result
}

// AssertSuccessResponse asserts the handler wrote a success envelope.
func AssertSuccessResponse(t *testing.T, tc *TestContext) {
	t.Helper()
	RequireSuccess(t, tc.Recorder)
}

// AssertErrorResponse asserts the handler wrote an error envelope carrying
// the expected machine-readable code, regardless of status.
func AssertErrorResponse(t *testing.T, tc *TestContext, expectedCode string) {
	t.Helper()

	resp := JSONResponse(t, tc)
	success, _ := resp["success"].(bool)
	require.False(t, success, "expected error envelope, body: %s", tc.Recorder.Body.String())
	assert.Equal(t, expectedCode, resp["code"], "unexpected error code")
	assert.NotEmpty(t, resp["error"], "error envelope must carry a message")
}

// HTTPTestCase drives a single gin handler through a synthetic request.
type HTTPTestCase struct {
	Name           string
	Method         string
	Path           string
	Body           interface{}
	Headers        map[string]string
	ExpectedStatus int
	ExpectedBody   map[string]interface{}
	Setup          func(t *testing.T, tc *TestContext)
	Validate       func(t *testing.T, tc *TestContext)
}

// RunHTTPTestCases runs each case as a subtest.
func RunHTTPTestCases(t *testing.T, handler gin.HandlerFunc, cases []HTTPTestCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			RunHTTPTestCase(t, handler, tc)
		})
	}
}

// RunHTTPTestCase builds the request described by tc, invokes the handler,
// and applies the declared expectations plus the optional Validate hook.
func RunHTTPTestCase(t *testing.T, handler gin.HandlerFunc, tc HTTPTestCase) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = buildRequest(t, tc)

	testCtx := &TestContext{Context: c, Recorder: w}
	if tc.Setup != nil {
		tc.Setup(t, testCtx)
	}

	handler(c)

	if tc.ExpectedStatus != 0 {
		assert.Equal(t, tc.ExpectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())
	}
	if tc.ExpectedBody != nil {
		actual := DecodeJSON(t, w.Body.Bytes())
		for key, want := range tc.ExpectedBody {
			assert.Equal(t, want, actual[key], "unexpected value for key %q", key)
		}
	}
	if tc.Validate != nil {
		tc.Validate(t, testCtx)
	}
}

func buildRequest(t *testing.T, tc HTTPTestCase) *http.Request {
	t.Helper()

	var body io.Reader
	if tc.Body != nil {
		body = ToJSONReader(t, tc.Body)
	}

	method := tc.Method
	if method == "" {
		method = http.MethodGet
	}
	path := tc.Path
	if path == "" {
		path = "/"
	}

	req := httptest.NewRequest(method, path, body)
	if tc.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range tc.Headers {
		req.Header.Set(k, v)
	}
	return req
}

// ToJSONReader marshals v and returns a reader over the JSON bytes.
func ToJSONReader(t *testing.T, v interface{}) io.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err, "failed to marshal request body")
	return bytes.NewReader(data)
}
