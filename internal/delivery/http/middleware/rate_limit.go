package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go-portfolio-backend/pkg/apperror"
	"go-portfolio-backend/pkg/ratelimit"
	"go-portfolio-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// Allower decides whether a keyed attempt is admitted.
type Allower interface {
	Allow(ctx context.Context, key string, now time.Time) (ratelimit.Decision, error)
}

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	Limiter Allower
	// Custom key extractor (default: ClientKey)
	KeyFunc func(*gin.Context) string
	// Clock, defaults to time.Now
	Now func() time.Time
}

// ContactRateLimitConfig returns the config for the contact form endpoint
func ContactRateLimitConfig(limiter Allower) RateLimitConfig {
	return RateLimitConfig{
		Limiter: limiter,
		KeyFunc: func(c *gin.Context) string {
			return ClientKey(c.Request)
		},
	}
}

// RateLimitMiddleware admits at most the limiter's quota per client key within
// its rolling window. Rejected attempts are not recorded.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return ClientKey(c.Request) }
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	return func(c *gin.Context) {
		key := config.KeyFunc(c)
		now := config.Now()

		decision, err := config.Limiter.Allow(c.Request.Context(), key, now)
		if err != nil {
			_ = c.Error(apperror.DeliveryFailure(fmt.Errorf("rate limit check: %w", err)))
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

		if !decision.Allowed {
			retryAfter := int(decision.RetryAfter(now).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logRateLimitTriggered(c, key)

			_ = c.Error(apperror.RateLimited())
			c.Abort()
			return
		}

		c.Next()
	}
}

// logRateLimitTriggered logs when rate limiting is triggered
func logRateLimitTriggered(c *gin.Context, key string) {
	logger := security.DefaultLogger()
	if logger != nil {
		logger.LogRateLimitTriggered(
			c.Request.Context(),
			key,
			c.GetHeader("User-Agent"),
			GetRequestID(c),
			c.FullPath(),
		)
	}
}
