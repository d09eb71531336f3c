package response

import (
	"github.com/gin-gonic/gin"
)

// SuccessResponse is the body of an accepted submission
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every rejected request
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string) {
	c.JSON(code, SuccessResponse{
		Success: true,
		Message: message,
	})
}

// Error sends an error response. Details are omitted when empty.
func Error(c *gin.Context, code int, message string, details []string) {
	c.JSON(code, ErrorResponse{
		Error:   message,
		Details: details,
	})
}

// JSON sends an arbitrary payload, used for status endpoints
func JSON(c *gin.Context, code int, payload interface{}) {
	c.JSON(code, payload)
}
