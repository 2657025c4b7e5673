package utils

import (
	"html"
	"strings"
	"unicode"
)

// SanitizeString trims whitespace and escapes HTML entities.
func SanitizeString(input string) string {
	return html.EscapeString(strings.TrimSpace(input))
}

// SanitizeEmail lowercases, trims and strips control characters from an email.
func SanitizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	var result strings.Builder
	for _, r := range email {
		if unicode.IsPrint(r) && !unicode.IsSpace(r) {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// SanitizeMobile keeps only the characters a phone number can carry.
func SanitizeMobile(mobile string) string {
	mobile = strings.TrimSpace(mobile)

	var result strings.Builder
	for _, r := range mobile {
		if unicode.IsDigit(r) || r == '+' {
			result.WriteRune(r)
		}
	}

	return result.String()
}
