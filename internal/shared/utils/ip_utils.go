package utils

import (
	"net"
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"
)

const fallbackIP = "127.0.0.1"

// ExtractClientIP returns the first parseable address among the leftmost
// X-Forwarded-For entry, X-Real-IP and the socket peer.
func ExtractClientIP(c *gin.Context) string {
	candidates := make([]string, 0, 3)

	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		candidates = append(candidates, first)
	}
	candidates = append(candidates, c.GetHeader("X-Real-IP"))

	peer := c.Request.RemoteAddr
	if host, _, err := net.SplitHostPort(peer); err == nil {
		peer = host
	}
	candidates = append(candidates, peer)

	for _, raw := range candidates {
		if addr, err := netip.ParseAddr(strings.TrimSpace(raw)); err == nil {
			return addr.Unmap().String()
		}
	}
	return fallbackIP
}
