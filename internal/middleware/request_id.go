package middleware

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avverma/fitrag/internal/pkg/logutil"
)

const ContextRequestIDKey = "request_id"

// RequestID tags every request with an id and binds a request-scoped
// logger into the context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-Id")
		if requestID == "" {
			requestID = newRequestID()
		}
		c.Set(ContextRequestIDKey, requestID)
		c.Writer.Header().Set("X-Request-Id", requestID)

		logger := logutil.GetLogger(c.Request.Context()).With(zap.String("request_id", requestID))
		c.Request = c.Request.WithContext(logutil.WithLogger(c.Request.Context(), logger))
		c.Next()
	}
}

func newRequestID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
