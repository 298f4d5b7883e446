package validation

import "regexp"

var specialChars = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)

// HasSpecialChar checks if a string contains at least one special character.
func HasSpecialChar(s string) bool {
	return specialChars.MatchString(s)
}

// ValidPassword applies the account password policy.
func ValidPassword(password string) bool {
	return len(password) >= 8 && HasSpecialChar(password)
}
