package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	stdlibmw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

// RateLimit returns middleware built on ulule/limiter with an in-process
// store, keyed by client IP. rate uses the limiter format, e.g. "5-S".
func RateLimit(rate string) (func(http.Handler) http.Handler, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", rate, err)
	}
	return limitMiddleware(limiter.New(memorystore.NewStore(), parsed)), nil
}

// RateLimitRedis returns rate limiting middleware backed by Redis, for
// deployments where limits must be shared across replicas.
func RateLimitRedis(rate string, redisURL string) (func(http.Handler) http.Handler, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", rate, err)
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	store, err := redisstore.NewStore(redis.NewClient(opts))
	if err != nil {
		return nil, fmt.Errorf("failed to create redis rate limit store: %w", err)
	}

	return limitMiddleware(limiter.New(store, parsed)), nil
}

func limitMiddleware(instance *limiter.Limiter) func(http.Handler) http.Handler {
	mw := stdlibmw.NewMiddleware(instance, stdlibmw.WithKeyGetter(ClientIP))
	return mw.Handler
}

// ClientIP extracts the client IP from the request, respecting
// X-Forwarded-For and X-Real-IP.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	return r.RemoteAddr
}
