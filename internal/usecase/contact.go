package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/email"
	"go-portfolio-backend/pkg/logger"
	"go-portfolio-backend/pkg/security"
	"go-portfolio-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

type contactUsecase struct {
	mailer   domain.Mailer
	profile  email.Profile
	validate *validator.Validate
	now      func() time.Time
}

// NewContactUsecase creates a new contact usecase. The profile's Sender is
// filled from the mailer when left empty.
func NewContactUsecase(mailer domain.Mailer, profile email.Profile, validate *validator.Validate) domain.ContactUsecase {
	if validate == nil {
		validate = validation.New()
	}
	if profile.Sender == "" {
		profile.Sender = mailer.Sender()
	}
	return &contactUsecase{
		mailer:   mailer,
		profile:  profile,
		validate: validate,
		now:      time.Now,
	}
}

func (uc *contactUsecase) IsConfigured() bool {
	return uc.mailer.IsConfigured()
}

// SendContactMessage validates the raw submission, sanitizes it, then sends the
// owner notification and the auto-reply. Success requires both sends to succeed.
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	if req == nil {
		return &domain.ValidationError{Details: []string{"Name, email, and message are all required"}}
	}

	// Rules apply to the trimmed raw values; sanitizing happens afterwards.
	if err := uc.validate.Struct(req); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return fmt.Errorf("contact: validator misuse: %w", err)
		}
		return &domain.ValidationError{Details: validation.FormatValidationErrors(err)}
	}

	data := email.ContactEmailData{
		SenderName:  security.SanitizeInput(req.Name),
		SenderEmail: security.SanitizeInput(req.Email),
		Message:     security.SanitizeInput(req.Message),
		SubmittedAt: uc.now(),
	}

	notification, err := uc.profile.NotificationMessage(data)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDelivery, err)
	}
	autoReply, err := uc.profile.AutoReplyMessage(data)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDelivery, err)
	}

	// Resolve both envelopes before touching the relay so neither send can fail on addressing.
	for _, msg := range []*email.Message{notification, autoReply} {
		if _, _, err := msg.Envelope(); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrDelivery, err)
		}
	}

	if err := uc.mailer.Verify(ctx); err != nil {
		return fmt.Errorf("%w: verify relay: %v", domain.ErrDelivery, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := uc.mailer.Send(gctx, notification); err != nil {
			return fmt.Errorf("notification: %v", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := uc.mailer.Send(gctx, autoReply); err != nil {
			return fmt.Errorf("auto-reply: %v", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDelivery, err)
	}

	logger.Log.InfoContext(ctx, "contact message delivered",
		"sender", security.MaskEmail(data.SenderEmail),
		"message_length", len([]rune(data.Message)),
	)
	return nil
}
