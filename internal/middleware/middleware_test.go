package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func routerWith(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func get(r *gin.Engine, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAPIKeyMiddleware(t *testing.T) {
	r := routerWith(APIKeyMiddleware("secret-key"))

	t.Run("valid key", func(t *testing.T) {
		w := get(r, map[string]string{"X-Storefront-API-Key": "secret-key"})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong key", func(t *testing.T) {
		w := get(r, map[string]string{"X-Storefront-API-Key": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing key", func(t *testing.T) {
		w := get(r, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unconfigured server rejects everything", func(t *testing.T) {
		r := routerWith(APIKeyMiddleware(""))
		w := get(r, map[string]string{"X-Storefront-API-Key": "anything"})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestRequestID(t *testing.T) {
	r := routerWith(RequestID())

	t.Run("generated when absent", func(t *testing.T) {
		w := get(r, nil)
		id := w.Header().Get("X-Request-ID")
		assert.True(t, strings.HasPrefix(id, "req_"))
	})

	t.Run("client id propagated", func(t *testing.T) {
		w := get(r, map[string]string{"X-Request-ID": "req_client123"})
		assert.Equal(t, "req_client123", w.Header().Get("X-Request-ID"))
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	r := routerWith(RateLimitMiddleware(RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstSize:         3,
	}))

	for i := 0; i < 3; i++ {
		w := get(r, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	// Burst exhausted.
	w := get(r, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
