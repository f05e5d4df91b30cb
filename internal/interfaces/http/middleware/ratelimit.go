package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"chatledger/internal/shared/constants"
	"chatledger/internal/shared/logger"
	"chatledger/internal/shared/utils"
)

// Limiter decides whether a given key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit throttles per authenticated user, falling back to client IP for
// anonymous routes.
func RateLimit(limiter Limiter, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetString(constants.ContextKeyUserID)
		if key == "" {
			key = c.ClientIP()
		}

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.Warnw("rate limit check failed", "key", key, "error", err)
			c.Next()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded")
			c.Abort()
			return
		}

		c.Next()
	}
}
