package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"event-platform/internal/metrics"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterTTL = 15 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterStore 每個 client IP 一個 token bucket，閒置超過 limiterTTL 的會被清掉
type limiterStore struct {
	mu          sync.Mutex
	limiters    map[string]*limiterEntry
	perMinute   int
	lastCleanup time.Time
	now         func() time.Time
}

func newLimiterStore(perMinute int) *limiterStore {
	return &limiterStore{
		limiters:    make(map[string]*limiterEntry),
		perMinute:   perMinute,
		lastCleanup: time.Now(),
		now:         time.Now,
	}
}

func (s *limiterStore) limiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastCleanup) > limiterTTL {
		for k, entry := range s.limiters {
			if now.Sub(entry.lastSeen) > limiterTTL {
				delete(s.limiters, k)
			}
		}
		s.lastCleanup = now
	}

	if entry, ok := s.limiters[key]; ok {
		entry.lastSeen = now
		return entry.limiter
	}

	interval := time.Minute / time.Duration(s.perMinute)
	limiter := rate.NewLimiter(rate.Every(interval), s.perMinute)
	s.limiters[key] = &limiterEntry{limiter: limiter, lastSeen: now}
	return limiter
}

// LoginRateLimit perMinute <= 0 時不限制
func LoginRateLimit(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	store := newLimiterStore(perMinute)
	retryAfter := strconv.Itoa(int((time.Minute / time.Duration(perMinute)).Seconds()) + 1)

	return func(c *gin.Context) {
		if !store.limiter(c.ClientIP()).Allow() {
			metrics.LoginAttempts.WithLabelValues("rate_limited").Inc()
			c.Header("Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many login attempts",
				"kind":  "rate_limited",
			})
			return
		}
		c.Next()
	}
}
