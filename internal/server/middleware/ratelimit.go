// file: internal/server/middleware/ratelimit.go
// version: 1.0.0
// guid: 3d5e7f9a-1b2c-4d4e-8f6a-8b0c2d4e6f8a

package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a per-IP token bucket limiter for the public search API.
type RateLimiter struct {
	mu             sync.Mutex
	clients        map[string]*clientLimiter
	requestsPerMin int
	burst          int
	idleTTL        time.Duration
}

// NewRateLimiter builds a limiter allowing requestsPerMinute with the
// given burst. Idle client buckets are dropped after 10 minutes.
func NewRateLimiter(requestsPerMinute, burst int) *RateLimiter {
	if requestsPerMinute < 1 {
		requestsPerMinute = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		clients:        make(map[string]*clientLimiter),
		requestsPerMin: requestsPerMinute,
		burst:          burst,
		idleTTL:        10 * time.Minute,
	}
}

func (r *RateLimiter) limiterFor(ip string) *rate.Limiter {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	for key, cl := range r.clients {
		if now.Sub(cl.lastSeen) > r.idleTTL {
			delete(r.clients, key)
		}
	}

	cl, ok := r.clients[ip]
	if !ok {
		cl = &clientLimiter{
			limiter:  rate.NewLimiter(rate.Limit(float64(r.requestsPerMin)/60.0), r.burst),
			lastSeen: now,
		}
		r.clients[ip] = cl
		return cl.limiter
	}
	cl.lastSeen = now
	return cl.limiter
}

// Middleware returns a Gin middleware that enforces the configured limit.
func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		if !r.limiterFor(ip).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}
