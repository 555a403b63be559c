package middleware

import (
	"math"
	"strconv"

	"autovad-backend/internal/pkg/response"
	"autovad-backend/internal/ratelimit"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// RateLimit guards a route group with the injected store, keyed by
// client IP. Exceeding the window returns 429 with a Retry-After
// header. Store errors fail open: a broken limiter must not take the
// listings API down with it.
func RateLimit(store ratelimit.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.Get("X-Forwarded-For")
		if ip == "" {
			ip = c.IP()
		}
		if ip == "" {
			ip = "unknown"
		}

		allowed, retryAfter, err := store.Allow(c.Context(), ip)
		if err != nil {
			log.Warn().Err(err).Str("ip", ip).Msg("rate limit store unavailable; allowing request")
			return c.Next()
		}
		if !allowed {
			secs := int(math.Ceil(retryAfter.Seconds()))
			if secs < 1 {
				secs = 1
			}
			c.Set("Retry-After", strconv.Itoa(secs))
			return response.APIError(c, fiber.StatusTooManyRequests, "Rate limit exceeded")
		}
		return c.Next()
	}
}
