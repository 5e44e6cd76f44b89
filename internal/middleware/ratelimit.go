package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimiter throttles requests per client IP. With a Redis client the
// counter is a shared fixed window, so every instance behind a load balancer
// sees the same budget; without one it degrades to an in-process token
// bucket per IP.
type RateLimiter struct {
	rdb       *redis.Client
	perMinute int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewRateLimiter(rdb *redis.Client, perMinute int) *RateLimiter {
	return &RateLimiter{
		rdb:       rdb,
		perMinute: perMinute,
		limiters:  map[string]*rate.Limiter{},
	}
}

// Handler is the gin middleware entry point.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed := true
		if rl.rdb != nil {
			allowed = rl.allowRedis(c.Request.Context(), c.ClientIP())
		} else {
			allowed = rl.allowLocal(c.ClientIP())
		}

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allowRedis(ctx context.Context, ip string) bool {
	key := "ratelimit:" + ip + ":" + time.Now().UTC().Format("200601021504")

	count, err := rl.rdb.Incr(ctx, key).Result()
	if err != nil {
		// Redis down: let the request through rather than failing closed
		return true
	}
	if count == 1 {
		rl.rdb.Expire(ctx, key, 2*time.Minute)
	}
	return count <= int64(rl.perMinute)
}

func (rl *RateLimiter) allowLocal(ip string) bool {
	rl.mu.Lock()
	limiter, ok := rl.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(float64(rl.perMinute)/60.0), rl.perMinute)
		rl.limiters[ip] = limiter
	}
	rl.mu.Unlock()

	return limiter.Allow()
}
