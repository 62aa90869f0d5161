package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	mountLimit  = 120
	exportLimit = 30
	limitWindow = time.Minute
)

// attemptLimiter counts recent requests per client for the endpoints that
// allocate state or rasterise images.
type attemptLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
}

func newAttemptLimiter() *attemptLimiter {
	return &attemptLimiter{
		attempts: make(map[string][]time.Time),
	}
}

// allow records the attempt unless the client already hit limit in window.
func (limiter *attemptLimiter) allow(key string, now time.Time, limit int, window time.Duration) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	pruned := limiter.pruneLocked(key, now, window)
	if len(pruned) >= limit {
		return false
	}
	limiter.attempts[key] = append(pruned, now)
	return true
}

func (limiter *attemptLimiter) pruneLocked(key string, now time.Time, window time.Duration) []time.Time {
	values := limiter.attempts[key]
	if len(values) == 0 {
		return []time.Time{}
	}

	threshold := now.Add(-window)
	pruned := make([]time.Time, 0, len(values))
	for _, value := range values {
		if value.After(threshold) {
			pruned = append(pruned, value)
		}
	}

	if len(pruned) == 0 {
		delete(limiter.attempts, key)
		return []time.Time{}
	}

	limiter.attempts[key] = pruned
	return pruned
}

func requestLimiterKey(c *fiber.Ctx, scope string) string {
	key := strings.TrimSpace(c.IP())
	if key == "" {
		key = "unknown"
	}
	return scope + ":" + key
}
