package middleware

import (
	"errors"
	"net/http"

	"go-tutoring-backend/internal/delivery/http/response"
	"go-tutoring-backend/pkg/apperror"
	"go-tutoring-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler maps errors appended to the gin context onto the response
// envelope. User-attributable failures (4xx) pass their message and field
// details through; anything else is logged server-side and the client gets
// a generic message so internals never leak.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("request failed",
					zap.Int("status", appErr.Code),
					zap.String("path", c.FullPath()),
					zap.Error(appErr.Err))
			}
			response.Error(c, appErr.Code, appErr.Message, appErr.Details)
			return
		}

		logger.Log.Error("unhandled error",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "エラーが発生しました。時間をおいて再度お試しください。", nil)
	}
}
