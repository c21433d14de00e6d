package router

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/streakbeast/beastcore/logger/xzap"
)

// traceMiddleware tags every request with a trace id so handler logs and the
// access log line can be correlated.
func traceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader("X-Trace-Id")
		if traceID == "" {
			traceID = uuid.NewString()
		}
		c.Set(xzap.CtxTraceID, traceID)
		// Propagate into the request context so service-layer logging sees it.
		c.Request = c.Request.WithContext(
			context.WithValue(c.Request.Context(), xzap.CtxTraceID, traceID)) //nolint:staticcheck
		c.Header("X-Trace-Id", traceID)
		c.Next()
	}
}

func accessLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		xzap.WithContext(c).Info("access",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
