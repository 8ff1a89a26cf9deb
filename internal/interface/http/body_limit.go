package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const defaultBodyLimit = 1 << 20 // 1 MiB

// bodyLimitMiddleware rejects declared oversize bodies up front and caps
// the rest with http.MaxBytesReader; binding then fails with
// *http.MaxBytesError, which the handlers map to 413.
func bodyLimitMiddleware(limit int64) gin.HandlerFunc {
	if limit <= 0 {
		limit = defaultBodyLimit
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			abortWithError(c, NewHTTPError(http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", nil))
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
