package middlewares

import (
	"os"

	"github.com/gin-gonic/gin"
)

// SecurityHeaders memasang header proteksi standar untuk API kasir.
// HSTS hanya dikirim saat GIN_MODE=release karena dev lokal jalan tanpa TLS.
func SecurityHeaders() gin.HandlerFunc {
	sendHSTS := os.Getenv("GIN_MODE") == "release"

	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Content-Security-Policy", "default-src 'self'")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		if sendHSTS {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
