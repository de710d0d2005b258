package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit applies a per-client-IP token bucket allowing max requests per
// window. It is a volume control on the outer surface, not a correctness
// mechanism.
func RateLimit(window time.Duration, max int) gin.HandlerFunc {
	var (
		mu      sync.Mutex
		buckets = make(map[string]*rate.Limiter)
	)
	perSecond := rate.Limit(float64(max) / window.Seconds())

	return func(c *gin.Context) {
		ip := c.ClientIP()
		mu.Lock()
		lim, ok := buckets[ip]
		if !ok {
			lim = rate.NewLimiter(perSecond, max)
			buckets[ip] = lim
		}
		mu.Unlock()

		if !lim.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": errorBody{
				Code:    "TOO_MANY_REQUESTS",
				Message: "Too many requests",
			}})
			return
		}
		c.Next()
	}
}
