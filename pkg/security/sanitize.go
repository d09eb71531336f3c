package security

import "strings"

var angleBrackets = strings.NewReplacer("<", "", ">", "")

// SanitizeInput strips every '<' and '>' and trims surrounding whitespace.
// Values end up inside the HTML notification, so this runs on validated input only.
func SanitizeInput(input string) string {
	return strings.TrimSpace(angleBrackets.Replace(input))
}
