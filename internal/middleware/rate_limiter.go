package middleware

import (
	"sync"
	"time"

	"cashflow-tracker/internal/errors"
	"cashflow-tracker/internal/handlers"

	"github.com/labstack/echo/v4"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const (
	defaultRequestsPerSecond = 5
	visitorIdleTTL           = 3 * time.Minute
	visitorSweepInterval     = time.Minute
)

// RateLimiter keeps one token bucket per client IP. Buckets idle for
// visitorIdleTTL are evicted by the cache janitor.
type RateLimiter struct {
	mu       sync.Mutex
	visitors *gocache.Cache
	limit    rate.Limit
	burst    int
}

// NewRateLimiter builds a limiter allowing rps requests per second per IP
// with the given burst. Non-positive values fall back to 5 rps and a
// burst of twice the rate.
func NewRateLimiter(rps, burst int) *RateLimiter {
	if rps <= 0 {
		rps = defaultRequestsPerSecond
	}
	if burst <= 0 {
		burst = rps * 2
	}
	return &RateLimiter{
		visitors: gocache.New(visitorIdleTTL, visitorSweepInterval),
		limit:    rate.Limit(rps),
		burst:    burst,
	}
}

// Middleware rejects requests over the caller's budget with SYSTEM_006.
// Clients are keyed by echo's RealIP (X-Forwarded-For, X-Real-IP, socket).
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.limiterFor(c.RealIP()).Allow() {
				c.Response().Header().Set("Retry-After", "1")
				return handlers.SendError(c, errors.SystemRateLimitExceeded)
			}
			return next(c)
		}
	}
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, found := rl.visitors.Get(ip); found {
		limiter := v.(*rate.Limiter)
		// refresh the idle deadline
		rl.visitors.SetDefault(ip, limiter)
		return limiter
	}

	limiter := rate.NewLimiter(rl.limit, rl.burst)
	rl.visitors.SetDefault(ip, limiter)
	return limiter
}

// Visitors reports how many client buckets are currently tracked.
func (rl *RateLimiter) Visitors() int {
	return rl.visitors.ItemCount()
}
