package middleware

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/haven/pkg/errors"
	"github.com/kart-io/haven/pkg/response"
)

// Recovery returns a middleware that recovers from panics in downstream
// handlers, logs the panic with a stack trace, and responds with a generic
// internal error body.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorw("panic recovered",
					"panic", r,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c),
					"stack", string(debug.Stack()),
				)
				response.Fail(c, errors.ErrPanic)
				c.Abort()
			}
		}()

		c.Next()
	}
}
