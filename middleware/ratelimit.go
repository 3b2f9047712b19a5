package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// bucket is one client's token bucket state.
type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// RateLimiter applies a per-client-IP token bucket. Buckets idle longer
// than staleAfter are pruned on the fly to keep the map bounded.
type RateLimiter struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	rate       float64 // tokens per second
	bucketSize float64
	staleAfter time.Duration
	lastPrune  time.Time
}

func NewRateLimiter(rate, bucketSize float64) *RateLimiter {
	return &RateLimiter{
		buckets:    make(map[string]*bucket),
		rate:       rate,
		bucketSize: bucketSize,
		staleAfter: 10 * time.Minute,
		lastPrune:  time.Now(),
	}
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		rl.mu.Lock()
		if now.Sub(rl.lastPrune) > rl.staleAfter {
			rl.prune(now)
		}

		b, exists := rl.buckets[ip]
		if !exists {
			b = &bucket{tokens: rl.bucketSize, lastRefill: now}
			rl.buckets[ip] = b
		}

		elapsed := now.Sub(b.lastRefill).Seconds()
		b.tokens = minFloat(rl.bucketSize, b.tokens+elapsed*rl.rate)
		b.lastRefill = now

		if b.tokens < 1 {
			rl.mu.Unlock()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}

		b.tokens--
		rl.mu.Unlock()

		c.Next()
	}
}

// prune drops buckets that have been idle past staleAfter. Caller holds
// the lock.
func (rl *RateLimiter) prune(now time.Time) {
	for ip, b := range rl.buckets {
		if now.Sub(b.lastRefill) > rl.staleAfter {
			delete(rl.buckets, ip)
		}
	}
	rl.lastPrune = now
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
