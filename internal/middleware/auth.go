package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIKeyMiddleware validates storefront-client authentication using the
// X-Storefront-API-Key header. The key is passed in at router construction;
// an empty key means the server is misconfigured and every request fails.
func APIKeyMiddleware(apiKey string) gin.HandlerFunc {
	if apiKey == "" {
		return func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "server misconfigured: storefront API key not set",
			})
		}
	}
	keyBytes := []byte(apiKey)

	return func(c *gin.Context) {
		key := c.GetHeader("X-Storefront-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), keyBytes) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized",
			})
			return
		}
		c.Next()
	}
}
