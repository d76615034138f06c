package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/nairamart/catalog-service/internal/pkg/cuid2"
)

// RequestIDKey is the gin context key holding the request identifier.
const RequestIDKey = "request_id"

// requestIDHeader is propagated from storefront clients when present.
const requestIDHeader = "X-Request-ID"

// RequestID assigns each request an identifier, honoring one supplied by
// the client, and echoes it in the response headers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = cuid2.New("req")
		}
		c.Set(RequestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}
