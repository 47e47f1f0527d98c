package middleware

import (
	"net/http"
	"sync"
	"time"

	"kidspace/metrics"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a per client IP token bucket
type RateLimiter struct {
	visitors map[string]*Visitor
	mu       sync.Mutex
	rate     int           // Tokens added per interval
	burst    int           // Bucket capacity
	interval time.Duration // Refill interval
	now      func() time.Time

	lastPrune time.Time
}

type Visitor struct {
	tokens      int
	lastUpdated time.Time
}

func NewRateLimiter(rate int, burst int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*Visitor),
		rate:     rate,
		burst:    burst,
		interval: time.Minute,
		now:      time.Now,
	}
}

// Allow takes one token from the bucket of ip
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastPrune) >= rl.interval {
		rl.prune(now)
	}

	visitor, exists := rl.visitors[ip]
	if !exists {
		visitor = &Visitor{tokens: rl.burst, lastUpdated: now}
		rl.visitors[ip] = visitor
	}

	refill := int(now.Sub(visitor.lastUpdated) / rl.interval)
	if refill > 0 {
		visitor.tokens += refill * rl.rate
		if visitor.tokens > rl.burst {
			visitor.tokens = rl.burst
		}
		visitor.lastUpdated = now
	}

	if visitor.tokens > 0 {
		visitor.tokens--
		return true
	}
	return false
}

// Prune forgets every visitor whose bucket has refilled completely, it
// would start over with a full bucket anyway. Allow calls it once per
// interval so the map only holds recently active clients.
func (rl *RateLimiter) Prune() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.prune(rl.now())
}

func (rl *RateLimiter) prune(now time.Time) int {
	rl.lastPrune = now
	if rl.rate <= 0 {
		return 0
	}
	idle := time.Duration((rl.burst+rl.rate-1)/rl.rate) * rl.interval

	removed := 0
	for ip, visitor := range rl.visitors {
		if now.Sub(visitor.lastUpdated) >= idle {
			delete(rl.visitors, ip)
			removed++
		}
	}
	return removed
}

func RateLimiterMiddleware(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.Allow(ip) {
			metrics.RateLimiterRejections.WithLabelValues(ip).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
