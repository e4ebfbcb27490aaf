package middleware

import (
	"fmt"
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"recyclemart/internal/infrastructure/ratelimit"
	"recyclemart/pkg/errors"
	"recyclemart/pkg/logger"
	"recyclemart/pkg/response"
)

// RateLimitMiddleware limits each user per action. A nil limiter lets every
// request through.
type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter *ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// Limit returns middleware for one action. It keys on the "uid" set by
// Identify and falls back to the client IP.
func (m *RateLimitMiddleware) Limit(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m == nil || m.limiter == nil {
				return next(c)
			}

			key, ok := c.Get("uid").(string)
			if !ok || key == "" {
				key = c.RealIP()
			}

			allowed, wait := m.limiter.Allow(key, action)
			if !allowed {
				logger.Warn("RATE LIMIT: %s exceeded %s (retry in %v)", key, action, wait)
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				return response.Error(c, errors.TooManyRequests(fmt.Sprintf("Too many %s requests", action)))
			}

			return next(c)
		}
	}
}
