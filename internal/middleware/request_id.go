package middleware

import (
	"strings"

	"github.com/SAP-F-2025/interview-coach/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxRequestIDLength = 128

// RequestID propagates an incoming request id or generates one when absent.
// The id is set on the response header, the gin context and the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(utils.RequestIDHeader))
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}
		c.Set(utils.RequestIDKey, requestID)
		c.Header(utils.RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(utils.WithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}
