package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"
)

// Logger writes one access log line per request via klog.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		if status >= 500 {
			klog.Errorf("%s %s %d %s", c.Request.Method, path, status, latency)
		} else {
			klog.V(1).Infof("%s %s %d %s", c.Request.Method, path, status, latency)
		}
	}
}
