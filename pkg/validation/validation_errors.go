package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	"Name":    "Name",
	"Email":   "Email",
	"Message": "Message",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages,
// one per failed field in struct order.
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	fieldName := e.StructField()
	label := getFieldLabel(fieldName)

	switch e.Tag() {
	case "trimmed_len":
		if rule, ok := ValidationRules[fieldName]; ok {
			return fmt.Sprintf("%s must be between %d and %d characters", label, rule.Min, rule.Max)
		}
		return fmt.Sprintf("%s has an invalid length", label)

	case "contact_email", "email":
		return "Please provide a valid email address"

	case "required":
		return fmt.Sprintf("%s is required", label)

	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return fieldName
}
