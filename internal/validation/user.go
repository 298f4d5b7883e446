package validation

import "regexp"

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidEmail performs a lightweight structural check.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
