package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIP sets the client IP into Gin context (key: "real_ip").
// CF-Connecting-IP wins, then the left-most X-Forwarded-For entry, then c.ClientIP().
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("real_ip", realIP(c))
		c.Next()
	}
}

func realIP(c *gin.Context) string {
	candidates := []string{strings.TrimSpace(c.GetHeader("CF-Connecting-IP"))}
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		candidates = append(candidates, strings.TrimSpace(first))
	}
	for _, s := range candidates {
		if ip := net.ParseIP(s); ip != nil {
			return ip.String()
		}
	}
	return c.ClientIP()
}
