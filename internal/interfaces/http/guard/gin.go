package guard

import (
	"bytes"
	"io"
	"net/http"

	"github.com/adebold/Commerce-Studio-sub022/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// requestIDKey mirrors the gin context key set by the request-ID middleware.
const requestIDKey = "request_id"

// maxBufferedBody caps how much request body the adapter reads for field
// checks. The body-limit middleware rejects oversized payloads before guards
// run; this bound only matters on routes mounted without it.
const maxBufferedBody = 4 << 20

// Chain adapts an ordered guard list into a single gin middleware. The
// request body is buffered once and an equivalent reader is put back so
// handler binding sees it intact. A halting verdict writes exactly one
// response and aborts the handler chain; a proceeding verdict changes
// nothing about the request.
func Chain(guards ...Guard) gin.HandlerFunc {
	bound := append([]Guard(nil), guards...)
	return func(c *gin.Context) {
		verdict := Run(ViewFromGin(c), bound)
		if !verdict.Halted() {
			c.Next()
			return
		}
		body := verdict.Body()
		logger.FromContext(c.Request.Context()).Warn("request rejected",
			zap.String("code", body.Code),
			zap.String("reason", body.Error),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		c.AbortWithStatusJSON(verdict.Status(), body)
	}
}

// ViewFromGin snapshots the parts of a gin request that guards inspect,
// draining the body into memory and restoring it for downstream readers.
func ViewFromGin(c *gin.Context) *RequestView {
	var body []byte
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		body, _ = io.ReadAll(io.LimitReader(c.Request.Body, maxBufferedBody))
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}
	return NewRequestView(
		c.Request.Method,
		c.Request.URL.Path,
		requestIDFromGin(c),
		c.Request.Header,
		c.Request.URL.Query(),
		body,
	)
}

func requestIDFromGin(c *gin.Context) string {
	if id := c.GetString(requestIDKey); id != "" {
		return id
	}
	if id := c.Writer.Header().Get("X-Request-ID"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}
