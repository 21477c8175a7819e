// file: internal/server/middleware/ratelimit_test.go
// version: 1.0.0
// guid: 4e6f8a0b-2c3d-4e5f-9a7b-9c1d3e5f7a9b

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func limitedRouter(limiter *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
	return router
}

func ping(router *gin.Engine, ip string) int {
	req := httptest.NewRequest("GET", "/ping", nil)
	req.RemoteAddr = ip + ":12345"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiterAllowsBurst(t *testing.T) {
	router := limitedRouter(NewRateLimiter(60, 3))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, ping(router, "10.0.0.1"), "request %d", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, ping(router, "10.0.0.1"))
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	router := limitedRouter(NewRateLimiter(60, 1))

	assert.Equal(t, http.StatusOK, ping(router, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, ping(router, "10.0.0.1"))
	// A different client has its own bucket.
	assert.Equal(t, http.StatusOK, ping(router, "10.0.0.2"))
}

func TestRateLimiterClampsConfig(t *testing.T) {
	limiter := NewRateLimiter(0, 0)
	assert.Equal(t, 1, limiter.requestsPerMin)
	assert.Equal(t, 1, limiter.burst)
}
