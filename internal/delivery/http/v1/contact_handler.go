package v1

import (
	"errors"
	"net/http"

	"go-portfolio-backend/internal/delivery/http/middleware"
	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/apperror"
	"go-portfolio-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// MaxContactBodyBytes caps the request body read by the contact handler.
const MaxContactBodyBytes = 64 << 10

const (
	msgContactSent      = "Message sent successfully! You should receive a confirmation email shortly."
	msgAllFieldsPresent = "Name, email, and message are all required"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact route behind the configuration
// guard and the per-client rate limiter (public, no auth required).
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, limiter middleware.Allower) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact",
		middleware.RequireMailer(contactUC.IsConfigured),
		middleware.RateLimitMiddleware(middleware.ContactRateLimitConfig(limiter)),
		handler.SubmitContact,
	)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Validates the submission, emails the site owner and sends an auto-reply to the sender. Limited to 5 submissions per hour per client.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  domain.ContactResponse
// @Failure      400      {object}  domain.ErrorResponse
// @Failure      429      {object}  domain.ErrorResponse
// @Failure      500      {object}  domain.ErrorResponse
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxContactBodyBytes)

	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var missing validator.ValidationErrors
		if errors.As(err, &missing) {
			_ = c.Error(apperror.MissingFields(msgAllFieldsPresent))
			return
		}
		security.DefaultLogger().LogMalformedInput(c.Request.Context(),
			middleware.ClientKey(c.Request), middleware.GetRequestID(c), err.Error())
		_ = c.Error(apperror.MalformedInput(err))
		return
	}

	if err := h.contactUC.SendContactMessage(c.Request.Context(), &req); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			security.DefaultLogger().LogValidationFailed(c.Request.Context(),
				req.Email, middleware.ClientKey(c.Request), middleware.GetRequestID(c), verr.Details)
			_ = c.Error(apperror.ValidationFailed(verr.Details))
			return
		}
		_ = c.Error(apperror.DeliveryFailure(err))
		return
	}

	response.Success(c, http.StatusOK, msgContactSent)
}
