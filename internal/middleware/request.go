package middleware

import (
	"time"

	"betania_backend/internal/util"
	"betania_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// RequestID 透传或生成请求ID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(util.RequestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// AccessLog 请求日志
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(util.RequestIDKey)),
		}
		if user := util.GetUserFromContext(c); user != nil {
			fields = append(fields, zap.Uint("user_id", user.UserID))
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.Log.Error("请求处理失败", fields...)
		case c.Writer.Status() >= 400:
			logger.Log.Warn("请求被拒绝", fields...)
		default:
			logger.Log.Info("请求完成", fields...)
		}
	}
}
