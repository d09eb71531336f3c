package middleware

import (
	"net/http"
	"strings"
)

const unknownClient = "unknown"

// ClientKey identifies the submitter for rate limiting: the first entry of
// X-Forwarded-For, then X-Real-IP, then "unknown". Headers are client-supplied
// and trusted as-is.
func ClientKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return unknownClient
}
