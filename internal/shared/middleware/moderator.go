package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"storymap-backend/internal/shared/response"
)

const ModeratorKeyHeader = "X-Moderator-Key"

// ModeratorKey guards the moderation routes with a shared secret.
// An empty key leaves the routes open (local development).
func ModeratorKey(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.Next()
			return
		}

		provided := c.GetHeader(ModeratorKeyHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			log.Warn().
				Str("request_id", c.GetString(RequestIDKey)).
				Str("ip", c.GetString(ClientIPKey)).
				Str("path", c.Request.URL.Path).
				Msg("Rejected moderation request")

			response.Unauthorized(c, "Moderator key required")
			c.Abort()
			return
		}

		c.Next()
	}
}
