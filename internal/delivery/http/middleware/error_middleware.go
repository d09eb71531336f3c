package middleware

import (
	"errors"

	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/pkg/apperror"
	"go-portfolio-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			// Unknown errors never reach the client; they render as a delivery failure.
			appErr = apperror.DeliveryFailure(err)
		}

		if appErr.Internal() {
			logger.Log.ErrorContext(c.Request.Context(), "request failed",
				"kind", string(appErr.Kind),
				"error", errorString(appErr.Err),
				"path", c.FullPath(),
				"request_id", GetRequestID(c),
			)
		}

		response.Error(c, appErr.Code, appErr.Message, appErr.Details)
	}
}

// Recovery renders panics as the generic delivery failure.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Log.ErrorContext(c.Request.Context(), "panic recovered",
			"panic", recovered,
			"path", c.FullPath(),
			"request_id", GetRequestID(c),
		)
		response.Error(c, apperror.DeliveryFailure(nil).Code, apperror.MsgDeliveryFailure, nil)
		c.Abort()
	})
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
