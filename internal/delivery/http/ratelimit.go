package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterEntry tracks one client's token bucket and last activity
type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterRegistry is a thread-safe map of per-IP token buckets with
// periodic eviction of idle entries.
type limiterRegistry struct {
	perMinute int
	entries   map[string]*limiterEntry
	mutex     sync.Mutex
}

func newLimiterRegistry(perMinute int) *limiterRegistry {
	registry := &limiterRegistry{
		perMinute: perMinute,
		entries:   make(map[string]*limiterEntry),
	}

	// Evict idle clients every 10 minutes so the map stays bounded
	go registry.cleanupIdle()

	return registry
}

// get returns the limiter for an IP, creating it on first sight
func (r *limiterRegistry) get(ip string) *rate.Limiter {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	entry, exists := r.entries[ip]
	if !exists {
		entry = &limiterEntry{
			limiter: rate.NewLimiter(rate.Limit(float64(r.perMinute)/60.0), r.perMinute),
		}
		r.entries[ip] = entry
	}
	entry.lastSeen = time.Now()

	return entry.limiter
}

// cleanupIdle removes entries not seen for a while
func (r *limiterRegistry) cleanupIdle() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		r.mutex.Lock()
		cutoff := time.Now().Add(-15 * time.Minute)
		for ip, entry := range r.entries {
			if entry.lastSeen.Before(cutoff) {
				delete(r.entries, ip)
			}
		}
		r.mutex.Unlock()
	}
}

// size returns the current number of tracked clients (for tests)
func (r *limiterRegistry) size() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.entries)
}

// RateLimitMiddleware enforces a per-IP request budget per minute
func RateLimitMiddleware(perMinute int) gin.HandlerFunc {
	registry := newLimiterRegistry(perMinute)

	return func(c *gin.Context) {
		if !registry.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
