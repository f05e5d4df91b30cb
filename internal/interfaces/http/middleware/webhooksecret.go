package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"chatledger/internal/shared/logger"
	"chatledger/internal/shared/utils"
)

// WebhookSecret authenticates inbound identity-provider events with a shared
// secret header. Constant-time comparison.
func WebhookSecret(secret string, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("X-Webhook-Secret")
		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			log.Warnw("webhook request rejected",
				"path", c.Request.URL.Path,
				"client_ip", c.ClientIP(),
			)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid webhook secret")
			c.Abort()
			return
		}
		c.Next()
	}
}
