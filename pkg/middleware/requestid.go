// Package middleware provides the gin middlewares shared by all Haven HTTP
// routes: request ID propagation, structured request logging, panic recovery,
// CORS, request timeouts, and JWT bearer authentication.
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/haven/pkg/id"
)

// HeaderXRequestID is the header carrying the request ID.
const HeaderXRequestID = "X-Request-ID"

// ContextKeyRequestID is the gin context key holding the request ID.
const ContextKeyRequestID = "request_id"

// RequestID returns a middleware that attaches a ULID request ID to each
// request. An incoming X-Request-ID header is honored; otherwise a new ID is
// generated. The ID is echoed in the response header and stored in the gin
// context for logging and response envelopes.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderXRequestID)
		if rid == "" {
			rid = id.New()
		}

		c.Set(ContextKeyRequestID, rid)
		c.Writer.Header().Set(HeaderXRequestID, rid)

		c.Next()
	}
}

// GetRequestID returns the request ID from the gin context.
// Returns empty string if not set.
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}
