package middleware

import (
	"fmt"
	"net/http"

	apperrors "github.com/SAP-F-2025/interview-coach/internal/errors"
	"github.com/SAP-F-2025/interview-coach/internal/utils"
	"github.com/gin-gonic/gin"
)

// Recovery turns panics into the standard 500 error body.
func Recovery(logger utils.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.Error("Recovered from panic",
			"panic", fmt.Sprint(recovered),
			"request_id", utils.RequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
			"code":  apperrors.CodeInternal,
		})
	})
}
