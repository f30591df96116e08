package middleware

import (
	"github.com/gin-gonic/gin"

	"storymap-backend/internal/shared/utils"
)

const ClientIPKey = "client_ip"

// ClientIPMiddleware resolves the caller address once, honoring proxy headers,
// and stores it for the access log.
func ClientIPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ClientIPKey, utils.ExtractClientIP(c))
		c.Next()
	}
}
