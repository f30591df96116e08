package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestExtractClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": " 203.0.113.7, 10.0.0.1"}, "10.0.0.2:80", "203.0.113.7"},
		{"garbage forwarded falls to real ip", map[string]string{"X-Forwarded-For": "unknown", "X-Real-IP": "198.51.100.4"}, "10.0.0.2:80", "198.51.100.4"},
		{"peer address", nil, "[2001:db8::1]:443", "2001:db8::1"},
		{"mapped v4 peer", nil, "[::ffff:192.0.2.9]:443", "192.0.2.9"},
		{"nothing usable", nil, "pipe", fallbackIP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/", nil)
			c.Request.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}

			assert.Equal(t, tt.want, ExtractClientIP(c))
		})
	}
}
