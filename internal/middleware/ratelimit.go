package middleware

import (
	"log/slog"
	"math"
	"strconv"

	"github.com/bewithdhanu/medicine-tracker/internal/apperr"
	"github.com/bewithdhanu/medicine-tracker/internal/ratelimit"
	"github.com/gofiber/fiber/v2"
)

var ErrRateLimited = apperr.RateLimited("Rate limit exceeded")

// RateLimit rejects requests over the limiter's quota per client IP.
// Store failures are logged and the request passes.
func RateLimit(l *ratelimit.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, err := l.Allow(c.UserContext(), c.IP())
		if err != nil {
			slog.Warn("rate limiter unavailable, allowing request",
				"limiter", l.Name(), "ip", c.IP(), "error", err)
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))

		if !d.Allowed {
			retry := int(math.Ceil(d.RetryAfter(l.Now()).Seconds()))
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retry))
			return respond(c, ErrRateLimited)
		}
		return c.Next()
	}
}
