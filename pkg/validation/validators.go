package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Local part, "@", domain label(s), ".", TLD; none may contain whitespace or "@".
// Whitespace covers the Unicode separators (\p{Z}), VT, NEL and BOM on top of RE2's ASCII \s.
const emailPart = `[^\s\p{Z}\x{0B}\x{85}\x{FEFF}@]+`

var emailRegex = regexp.MustCompile(`^` + emailPart + `@` + emailPart + `\.` + emailPart + `$`)

// LengthRule bounds the trimmed length of a string field, inclusive on both ends.
type LengthRule struct {
	Min int
	Max int
}

// ValidationRules holds the length bounds per struct field name.
var ValidationRules = map[string]LengthRule{
	"Name":    {Min: 2, Max: 100},
	"Message": {Min: 10, Max: 1000},
}

// New returns a validator with the custom rules registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("trimmed_len", TrimmedLen)
	_ = v.RegisterValidation("contact_email", ContactEmail)
}

// TrimmedLen checks the whitespace-trimmed length of the field against
// ValidationRules. Length is counted in code points, not bytes.
func TrimmedLen(fl validator.FieldLevel) bool {
	rule, ok := ValidationRules[fl.StructFieldName()]
	if !ok {
		return true
	}
	n := utf8.RuneCountInString(strings.TrimSpace(fl.Field().String()))
	return n >= rule.Min && n <= rule.Max
}

// ContactEmail validates the trimmed value against the simple address pattern.
func ContactEmail(fl validator.FieldLevel) bool {
	return IsEmail(fl.Field().String())
}

// IsEmail reports whether s, once trimmed, looks like an email address.
func IsEmail(s string) bool {
	return emailRegex.MatchString(strings.TrimSpace(s))
}
