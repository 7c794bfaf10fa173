package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ledes/internal/metrics"
)

const requestIDHeader = "X-Request-ID"

// requestLogger tags each request with an id and logs it once it completes.
func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)
		c.Next()

		h.logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// recovery turns a panic into the generic failure body so the process keeps serving.
func (h *Handler) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				h.logger.Error("panic while handling request",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
				)
				if c.FullPath() == "/api/chat" {
					metrics.ChatRequests.WithLabelValues(metrics.OutcomeInternal).Inc()
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": genericFailure, "code": codeInternal})
			}
		}()
		c.Next()
	}
}
