package middleware

import (
	"sync"
	"time"

	"go-timely/internal/shared/apperror"
	"go-timely/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long an unused key keeps its bucket.
const limiterIdleTTL = 10 * time.Minute

// KeyedLimiter hands out one token bucket per key (client IP, user) and
// drops buckets that went unused for limiterIdleTTL.
type KeyedLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	r       rate.Limit
	b       int
	now     func() time.Time
	swept   time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewKeyedLimiter(r rate.Limit, b int) *KeyedLimiter {
	return &KeyedLimiter{buckets: make(map[string]*bucket), r: r, b: b, now: time.Now}
}

func (k *KeyedLimiter) Allow(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	if now.Sub(k.swept) > limiterIdleTTL {
		for key, bk := range k.buckets {
			if now.Sub(bk.lastSeen) > limiterIdleTTL {
				delete(k.buckets, key)
			}
		}
		k.swept = now
	}

	bk, ok := k.buckets[key]
	if !ok {
		bk = &bucket{limiter: rate.NewLimiter(k.r, k.b)}
		k.buckets[key] = bk
	}
	bk.lastSeen = now
	return bk.limiter.AllowN(now, 1)
}

// Len reports how many keys hold a bucket.
func (k *KeyedLimiter) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.buckets)
}

func rejectRateLimited(c *gin.Context) {
	response.Abort(c, apperror.ErrRateLimited)
}

// RateLimitByIP guards trigger endpoints that a misbehaving device could
// flood.
func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			rejectRateLimited(c)
			return
		}
		c.Next()
	}
}

// RateLimitByUser limits per authenticated user; anonymous requests pass.
func RateLimitByUser(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedLimiter(r, b)
	return func(c *gin.Context) {
		userID := c.GetString("user_id_validated")
		if userID == "" {
			c.Next()
			return
		}
		if !limiter.Allow(userID) {
			rejectRateLimited(c)
			return
		}
		c.Next()
	}
}
