package middleware

import (
	"Inkpost/internal/pkg/metrics"
	"time"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware 按路由模板统计，未匹配的路由归为 unmatched
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
