package domain

import (
	"context"
	"errors"
	"strings"

	"go-portfolio-backend/pkg/email"
)

// ContactRequest represents a contact form submission.
// Presence is enforced at binding time; length and format rules run in the usecase.
type ContactRequest struct {
	Name    string `json:"name" binding:"required" validate:"trimmed_len" example:"Jane Doe"`
	Email   string `json:"email" binding:"required" validate:"contact_email" example:"jane@example.com"`
	Message string `json:"message" binding:"required" validate:"trimmed_len" example:"Hi, I'd love to talk about a project."`
}

// ContactResponse is the body returned after both emails were sent
type ContactResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Message sent successfully! You should receive a confirmation email shortly."`
}

// ErrorResponse is the body returned for every rejected submission
type ErrorResponse struct {
	Error   string   `json:"error" example:"Please check your input fields"`
	Details []string `json:"details,omitempty"`
}

// Mailer delivers composed messages over a verified connection.
type Mailer interface {
	IsConfigured() bool
	Sender() string
	Verify(ctx context.Context) error
	Send(ctx context.Context, msg *email.Message) error
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage validates, sanitizes and dispatches both emails
	SendContactMessage(ctx context.Context, req *ContactRequest) error
	IsConfigured() bool
}

// ErrDelivery wraps any failure to verify the relay or send either email.
var ErrDelivery = errors.New("contact: delivery failed")

// ValidationError lists every rule the submission violated, in field order.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "contact: validation failed: " + strings.Join(e.Details, "; ")
}
