package domain

import "strings"

// NormalizeEmail lower-cases and trims an email. Every email stored or
// compared by this system goes through here first.
func NormalizeEmail(email Email) Email {
	return strings.ToLower(strings.TrimSpace(email))
}
