package security_test

import (
	"context"
	"errors"
	"testing"

	"go-portfolio-backend/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeInput(t *testing.T) {
	cases := map[string]string{
		"<b>Bob</b>":                   "bBob/b",
		"  <script>alert(1)</script> ": "scriptalert(1)/script",
		"plain text":                   "plain text",
		"a & b \"quoted\"":             "a & b \"quoted\"",
		"   ":                          "",
		"< padded >":                   "padded",
	}
	for in, want := range cases {
		assert.Equal(t, want, security.SanitizeInput(in), in)
	}
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", security.MaskEmail("jane@example.com"))
	assert.Equal(t, "***", security.MaskEmail("ab"))
	assert.Equal(t, "***@example.com", security.MaskEmail("j@example.com"))
	assert.Equal(t, "***", security.MaskEmail("not-an-email"))
	assert.Equal(t, "***", security.MaskEmail(""))
	assert.Equal(t, "é***@example.com", security.MaskEmail("élise@example.com"))
	assert.Equal(t, "***@example.com", security.MaskEmail("é@example.com"))
	assert.Equal(t, "***@example.com", security.MaskEmail("@example.com"))
}

func TestSecurityLoggerLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sl := security.NewSecurityLogger(zap.New(core), "portfolio-test", "test")
	ctx := context.Background()

	sl.LogRateLimitTriggered(ctx, "203.0.113.7", "curl/8", "req-1", "/api/contact")
	sl.LogValidationFailed(ctx, " jane@example.com ", "203.0.113.7", "req-2", []string{"Name must be between 2 and 100 characters"})
	sl.LogRateLimitDegraded(ctx, "203.0.113.7", "req-3", errors.New("redis down"))

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "rate_limit_triggered", entries[0].Message)
	assert.Equal(t, "203.0.113.7", entries[0].ContextMap()["ip"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "j***@example.com", entries[1].ContextMap()["subject_value"])

	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Contains(t, entries[2].ContextMap()["details"], "redis down")
}

func TestEventSeverity(t *testing.T) {
	assert.Equal(t, security.SeverityINFO, security.GetSeverity(security.EventMalformedInput))
	assert.Equal(t, security.SeverityWARN, security.GetSeverity(security.EventRateLimitTriggered))
	assert.Equal(t, security.SeverityWARN, security.GetSeverity(security.EventType("unmapped")))
	assert.True(t, security.IsHighOrAbove(security.EventRateLimitDegraded))
	assert.False(t, security.IsHighOrAbove(security.EventValidationFailed))
}

func TestValidationFailedMasksMalformedEmail(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sl := security.NewSecurityLogger(zap.New(core), "portfolio-test", "test")

	sl.LogValidationFailed(context.Background(), "not-an-email", "203.0.113.7", "req-4", []string{"Please provide a valid email address"})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "***", entries[0].ContextMap()["subject_value"])
}
