package apperror

import "net/http"

// Kind classifies an AppError for response rendering and logging.
type Kind string

const (
	KindConfiguration    Kind = "ConfigurationError"
	KindRateLimited      Kind = "RateLimited"
	KindMalformedInput   Kind = "MalformedInput"
	KindMissingFields    Kind = "MissingFields"
	KindValidationFailed Kind = "ValidationFailed"
	KindDeliveryFailure  Kind = "DeliveryFailure"
)

// User-facing messages. Internal causes never leave the server.
const (
	MsgConfiguration    = "Server configuration error"
	MsgRateLimited      = "Too many contact attempts. Please try again later."
	MsgMalformedInput   = "Invalid JSON in request body"
	MsgMissingFields    = "Missing required fields"
	MsgValidationFailed = "Please check your input fields"
	MsgDeliveryFailure  = "Failed to send message. Please try again later or contact me directly."
)

type AppError struct {
	Code    int      `json:"code"`
	Kind    Kind     `json:"kind"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	Err     error    `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Internal reports whether the error should be logged server-side.
func (e *AppError) Internal() bool {
	return e.Kind == KindConfiguration || e.Kind == KindDeliveryFailure
}

func New(code int, kind Kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func Configuration(err error) *AppError {
	return New(http.StatusInternalServerError, KindConfiguration, MsgConfiguration, err)
}

func RateLimited() *AppError {
	return New(http.StatusTooManyRequests, KindRateLimited, MsgRateLimited, nil)
}

func MalformedInput(err error) *AppError {
	return New(http.StatusBadRequest, KindMalformedInput, MsgMalformedInput, err)
}

func MissingFields(details ...string) *AppError {
	e := New(http.StatusBadRequest, KindMissingFields, MsgMissingFields, nil)
	e.Details = details
	return e
}

func ValidationFailed(details []string) *AppError {
	e := New(http.StatusBadRequest, KindValidationFailed, MsgValidationFailed, nil)
	e.Details = details
	return e
}

func DeliveryFailure(err error) *AppError {
	return New(http.StatusInternalServerError, KindDeliveryFailure, MsgDeliveryFailure, err)
}
