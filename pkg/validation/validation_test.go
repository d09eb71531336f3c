package validation_test

import (
	"errors"
	"strings"
	"testing"

	"go-portfolio-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type form struct {
	Name    string `validate:"trimmed_len"`
	Email   string `validate:"contact_email"`
	Message string `validate:"trimmed_len"`
}

func validForm() form {
	return form{Name: "Bob", Email: "bob@example.com", Message: "Hello there, nice site!"}
}

func TestEveryFieldIsReported(t *testing.T) {
	v := validation.New()

	err := v.Struct(form{Name: "A", Email: "not-an-email", Message: "hi"})
	require.Error(t, err)

	assert.Equal(t, []string{
		"Name must be between 2 and 100 characters",
		"Please provide a valid email address",
		"Message must be between 10 and 1000 characters",
	}, validation.FormatValidationErrors(err))
}

func TestLengthBoundaries(t *testing.T) {
	v := validation.New()

	cases := []struct {
		name    string
		mutate  func(*form)
		wantErr bool
	}{
		{"name 2", func(f *form) { f.Name = "ab" }, false},
		{"name 100", func(f *form) { f.Name = strings.Repeat("a", 100) }, false},
		{"name 1", func(f *form) { f.Name = "a" }, true},
		{"name 101", func(f *form) { f.Name = strings.Repeat("a", 101) }, true},
		{"name trimmed to 1", func(f *form) { f.Name = "   a   " }, true},
		{"name multibyte 2", func(f *form) { f.Name = "éé" }, false},
		{"message 10", func(f *form) { f.Message = strings.Repeat("m", 10) }, false},
		{"message 1000", func(f *form) { f.Message = strings.Repeat("m", 1000) }, false},
		{"message 9", func(f *form) { f.Message = strings.Repeat("m", 9) }, true},
		{"message 1001", func(f *form) { f.Message = strings.Repeat("m", 1001) }, true},
		{"message whitespace only", func(f *form) { f.Message = strings.Repeat(" ", 20) }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validForm()
			tc.mutate(&f)
			err := v.Struct(f)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsEmail(t *testing.T) {
	valid := []string{"a@b.co", "  first.last@sub.example.org ", "x+y@d.io"}
	invalid := []string{
		"", "not-an-email", "a@b", "a b@c.d", "a@@b.co", "@b.co", "a@.co",
		"bob\u00a0smith@example.org",
		"bob@exa\u2028mple.org",
		"bob@example\u2029.org",
		"bob\u000bx@example.org",
		"bob\u0085x@example.org",
		"bob@\ufeffexample.org",
		"bob\u3000smith@example.org",
	}

	for _, s := range valid {
		assert.True(t, validation.IsEmail(s), s)
	}
	for _, s := range invalid {
		assert.False(t, validation.IsEmail(s), s)
	}
}

func TestFormatNonValidationError(t *testing.T) {
	assert.Equal(t, []string{"boom"}, validation.FormatValidationErrors(errors.New("boom")))
}
