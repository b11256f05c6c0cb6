package middleware

import (
	"Inkpost/internal/pkg/logger"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const TraceHeader = "X-Trace-ID"

// 上游 trace id 仅接受 8-64 位字母数字与连字符，否则重新生成
var traceIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]{8,64}$`)

func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceHeader)
		if !traceIDPattern.MatchString(traceID) {
			traceID = uuid.NewString()
		}

		c.Set(logger.TraceIDKey, traceID)
		c.Request = c.Request.WithContext(logger.WithTraceID(c.Request.Context(), traceID))

		c.Header(TraceHeader, traceID)
		c.Next()
	}
}
