package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"storymap-backend/internal/infrastructure/metrics"
)

// Metrics records request count and latency per route template, so
// /stories/:id stays one series no matter how many ids are requested.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveHTTPRequest(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}
