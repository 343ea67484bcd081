package api

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adecos/ads-copilot/internal/pkg/httputil"
	"github.com/adecos/ads-copilot/internal/pkg/logger"
)

// RateLimiter throttles chat requests per client IP using a Redis
// counter with a one-minute window.
type RateLimiter struct {
	client    *redis.Client
	perMinute int
}

// NewRateLimiter creates a limiter allowing perMinute requests per IP.
func NewRateLimiter(client *redis.Client, perMinute int) *RateLimiter {
	return &RateLimiter{client: client, perMinute: perMinute}
}

// Middleware rejects requests over the limit with 429. Redis outages
// fail open.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := fmt.Sprintf("ratelimit:chat:%s:%s", clientIP(r), time.Now().Format("2006-01-02T15:04"))

		count, err := rl.client.Incr(r.Context(), key).Result()
		if err != nil {
			logger.Warn("rate limit check failed", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			rl.client.Expire(r.Context(), key, time.Minute)
		}

		if count > int64(rl.perMinute) {
			httputil.TooManyRequests(w, "rate limit exceeded, try again in a minute")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
