package middleware

import (
	"errors"

	"go-portfolio-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

var errMailerNotConfigured = errors.New("EMAIL_USER or EMAIL_APP_PASSWORD is not set")

// RequireMailer rejects the request before any other work when mail
// credentials are missing. configured is evaluated per request.
func RequireMailer(configured func() bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !configured() {
			_ = c.Error(apperror.Configuration(errMailerNotConfigured))
			c.Abort()
			return
		}
		c.Next()
	}
}
