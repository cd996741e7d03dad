package middleware

import (
	"net/http"
	"strconv"
	"time"

	"go-tutoring-backend/internal/delivery/http/response"
	"go-tutoring-backend/pkg/logger"
	"go-tutoring-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// fallbackIdentifier groups requests whose client address could not be
// determined.
const fallbackIdentifier = "unknown"

// RateLimitConfig holds configuration for the submission rate limit.
type RateLimitConfig struct {
	// Limiter is the primary backend (Redis when configured).
	Limiter ratelimit.Limiter
	// Fallback takes over when the primary backend errors. Nil means
	// fail open without counting.
	Fallback ratelimit.Limiter
	// FailClosed rejects requests when the primary backend errors
	// instead of falling back. Off by default: a Redis outage must not
	// take the contact form down.
	FailClosed bool
	// Limit is echoed in the X-RateLimit-Limit header.
	Limit int
}

// RateLimitMiddleware admits or rejects per client IP before the request
// body is even read, so the counter moves for invalid submissions too.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := c.ClientIP()
		if identifier == "" {
			identifier = fallbackIdentifier
		}

		decision, err := config.Limiter.Check(c.Request.Context(), identifier)
		if err != nil {
			logger.Log.Warn("rate limit backend error",
				zap.String("identifier", identifier),
				zap.Error(err))

			if config.FailClosed {
				response.Error(c, http.StatusServiceUnavailable, "現在混み合っています。時間をおいて再度お試しください。", nil)
				c.Abort()
				return
			}
			if config.Fallback == nil {
				c.Next()
				return
			}
			// In-memory fallback errors are not possible.
			decision, _ = config.Fallback.Check(c.Request.Context(), identifier)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Header("X-RateLimit-Reset", decision.ResetAt.Format(time.RFC3339))

		if !decision.Admitted {
			retryAfter := int(time.Until(decision.ResetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.Info("submission rate limit triggered",
				zap.String("identifier", identifier),
				zap.Int("count", decision.Count))

			response.Error(c, http.StatusTooManyRequests, "短時間に多くの送信がありました。時間をおいて再度お試しください。", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
