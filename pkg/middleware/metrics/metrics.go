package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Observer receives one measurement per handled request.
type Observer interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
}

// Middleware records request duration and count per route template.
func Middleware(observer Observer) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if observer == nil {
			return
		}
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		observer.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
