package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger writes one line per request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		tag := "➡️"
		switch {
		case status >= 500:
			tag = "❌"
		case status >= 400:
			tag = "⚠️"
		}
		log.Printf("%s %s %s %s %d %s", tag, c.Request.Method, c.Request.URL.Path, c.ClientIP(), status, time.Since(start))
	}
}
