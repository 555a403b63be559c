package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// searchQueryRe guards the public search parameter: up to 50 chars of
// word characters, whitespace, or hyphens. Anything else is rejected
// before a query is built.
var searchQueryRe = regexp.MustCompile(`^[\w\s-]{0,50}$`)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var numericIDRe = regexp.MustCompile(`^\d+$`)

var uuidRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// IsValidSearchQuery reports whether q is safe to use as a listings
// search term.
func IsValidSearchQuery(q string) bool {
	return searchQueryRe.MatchString(q)
}

// IsValidCarID accepts numeric ids and UUIDs (case-insensitive).
func IsValidCarID(id string) bool {
	if id == "" {
		return false
	}
	if numericIDRe.MatchString(id) {
		return true
	}
	return uuidRe.MatchString(strings.ToLower(id))
}

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsValidPassword requires at least 8 characters with at least one
// letter, one digit, and one special character.
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter, hasDigit, hasSpecial := false, false, false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	return hasLetter && hasDigit && hasSpecial
}
