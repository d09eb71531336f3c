package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/usecase"
	"go-portfolio-backend/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) IsConfigured() bool {
	return m.Called().Bool(0)
}

func (m *MockMailer) Sender() string {
	return "relay@example.com"
}

func (m *MockMailer) Verify(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockMailer) Send(ctx context.Context, msg *email.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func testProfile() email.Profile {
	return email.Profile{
		OwnerName:   "Jane Doe",
		OwnerTitle:  "Full Stack Developer",
		OwnerEmail:  "owner@example.com",
		GitHubURL:   "https://github.com/janedoe",
		LinkedInURL: "https://linkedin.com/in/janedoe",
	}
}

func validRequest() *domain.ContactRequest {
	return &domain.ContactRequest{
		Name:    "Bob Smith",
		Email:   "bob@example.org",
		Message: "I would like to discuss a project.",
	}
}

func to(addr string) interface{} {
	return mock.MatchedBy(func(m *email.Message) bool { return m.To == addr })
}

func TestSendContactMessageDispatchesBothEmails(t *testing.T) {
	mailer := new(MockMailer)
	mailer.On("Verify", mock.Anything).Return(nil).Once()
	mailer.On("Send", mock.Anything, to("owner@example.com")).Return(nil).Once()
	mailer.On("Send", mock.Anything, to("bob@example.org")).Return(nil).Once()

	uc := usecase.NewContactUsecase(mailer, testProfile(), nil)
	require.NoError(t, uc.SendContactMessage(context.Background(), validRequest()))

	mailer.AssertExpectations(t)
	mailer.AssertNumberOfCalls(t, "Send", 2)
}

func TestSendContactMessageReportsEveryViolation(t *testing.T) {
	mailer := new(MockMailer)
	uc := usecase.NewContactUsecase(mailer, testProfile(), nil)

	err := uc.SendContactMessage(context.Background(), &domain.ContactRequest{
		Name:    "A",
		Email:   "not-an-email",
		Message: "hi",
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{
		"Name must be between 2 and 100 characters",
		"Please provide a valid email address",
		"Message must be between 10 and 1000 characters",
	}, verr.Details)
	mailer.AssertNotCalled(t, "Verify", mock.Anything)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSendContactMessageWhitespaceOnlyFailsValidation(t *testing.T) {
	uc := usecase.NewContactUsecase(new(MockMailer), testProfile(), nil)

	req := validRequest()
	req.Name = "    "
	err := uc.SendContactMessage(context.Background(), req)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"Name must be between 2 and 100 characters"}, verr.Details)
}

func TestSendContactMessageSanitizesBeforeComposing(t *testing.T) {
	var subjects []string
	mailer := new(MockMailer)
	mailer.On("Verify", mock.Anything).Return(nil)
	mailer.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		msg := args.Get(1).(*email.Message)
		if msg.To == "owner@example.com" {
			subjects = append(subjects, msg.Subject)
			assert.Contains(t, msg.TextBody, "Message:\nscript alert(1) /script is what I typed")
		}
	}).Return(nil)

	uc := usecase.NewContactUsecase(mailer, testProfile(), nil)
	err := uc.SendContactMessage(context.Background(), &domain.ContactRequest{
		Name:    "  <b>Bob</b>  ",
		Email:   " bob@example.org ",
		Message: "<script> alert(1) </script> is what I typed",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"New Portfolio Contact: bBob/b"}, subjects)
	mailer.AssertCalled(t, "Send", mock.Anything, to("bob@example.org"))
}

func TestSendContactMessageVerifyFailure(t *testing.T) {
	mailer := new(MockMailer)
	mailer.On("Verify", mock.Anything).Return(errors.New("535 authentication failed"))

	uc := usecase.NewContactUsecase(mailer, testProfile(), nil)
	err := uc.SendContactMessage(context.Background(), validRequest())

	require.ErrorIs(t, err, domain.ErrDelivery)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSendContactMessageEitherSendFailing(t *testing.T) {
	for _, failing := range []string{"owner@example.com", "bob@example.org"} {
		t.Run(failing, func(t *testing.T) {
			mailer := new(MockMailer)
			mailer.On("Verify", mock.Anything).Return(nil)
			mailer.On("Send", mock.Anything, to(failing)).Return(errors.New("550 rejected"))
			mailer.On("Send", mock.Anything, mock.Anything).Return(nil)

			uc := usecase.NewContactUsecase(mailer, testProfile(), nil)
			err := uc.SendContactMessage(context.Background(), validRequest())

			require.ErrorIs(t, err, domain.ErrDelivery)
			assert.True(t, strings.Contains(err.Error(), "550 rejected"))
		})
	}
}

func TestNewContactUsecaseFillsSender(t *testing.T) {
	mailer := new(MockMailer)
	mailer.On("Verify", mock.Anything).Return(nil)
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(m *email.Message) bool {
		return strings.HasSuffix(m.From, "<relay@example.com>")
	})).Return(nil)

	uc := usecase.NewContactUsecase(mailer, testProfile(), nil)
	require.NoError(t, uc.SendContactMessage(context.Background(), validRequest()))
	mailer.AssertNumberOfCalls(t, "Send", 2)
}

func TestHealthCheck(t *testing.T) {
	ok := usecase.NewHealthUsecase(true, "memory", nil).Check(context.Background())
	assert.Equal(t, "ok", ok["status"])
	assert.Equal(t, "memory", ok["rate_limit_store"])

	down := usecase.NewHealthUsecase(false, "redis", func(context.Context) error {
		return errors.New("connection refused")
	}).Check(context.Background())
	assert.Equal(t, "degraded", down["status"])
	assert.Equal(t, "not_configured", down["mail"])
	assert.Equal(t, "unreachable", down["rate_limit_backend"])
}

func TestSendContactMessageUnusableEnvelopeFailsBeforeVerify(t *testing.T) {
	mailer := new(MockMailer)
	profile := testProfile()
	profile.OwnerEmail = "owner example.com"

	uc := usecase.NewContactUsecase(mailer, profile, nil)
	err := uc.SendContactMessage(context.Background(), validRequest())

	require.ErrorIs(t, err, domain.ErrDelivery)
	mailer.AssertNotCalled(t, "Verify", mock.Anything)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSendContactMessageAcceptsLooseSenderAddress(t *testing.T) {
	mailer := new(MockMailer)
	mailer.On("Verify", mock.Anything).Return(nil)
	mailer.On("Send", mock.Anything, mock.Anything).Return(nil)

	req := validRequest()
	req.Email = "bob.@example.org"
	uc := usecase.NewContactUsecase(mailer, testProfile(), nil)

	require.NoError(t, uc.SendContactMessage(context.Background(), req))
	mailer.AssertCalled(t, "Send", mock.Anything, to("bob.@example.org"))
}
