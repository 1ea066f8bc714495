package utils

import "strings"

// NormalizeString standardizes a string
func NormalizeString(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// EmailDomain returns the lowercased domain part of an email address, or ""
// when there is none
func EmailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return NormalizeString(email[at+1:])
}
