package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"github.com/SAP-F-2025/quiz-service/internal/cache"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const msgTooManyRequests = "Too many requests, please try again later."

// RateLimiter counts a caller's requests in the current window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (cache.RateLimitResult, error)
}

// RateLimit applies a per-client-IP limit and sets the RateLimit-* headers.
// Limiter failures let the request through.
func RateLimit(limiter RateLimiter, logger utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Warn("Rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		c.Header("RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("RateLimit-Reset", strconv.Itoa(int(math.Ceil(result.ResetIn.Seconds()))))

		if !result.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(result.ResetIn.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": msgTooManyRequests})
			return
		}
		c.Next()
	}
}
