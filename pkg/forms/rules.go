package forms

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

const (
	LicenseLength       = 8
	LicensePrefixLength = 3
	LicenseDigitsLength = 5

	MinUsernameLength = 3
	MaxUsernameLength = 150
)

var (
	msgRequired       = "This field is required."
	msgLicenseLength  = fmt.Sprintf("Ensure this value has exactly %d characters", LicenseLength)
	msgLicensePrefix  = fmt.Sprintf("The first %d characters of the license number must be uppercase letters!", LicensePrefixLength)
	msgLicenseDigits  = fmt.Sprintf("Last %d characters must be digits!", LicenseDigitsLength)
	msgUsernameShort  = fmt.Sprintf("Username is too short. Min. length is %d symbols.", MinUsernameLength)
	msgUsernameLong   = fmt.Sprintf("Ensure this value has at most %d characters", MaxUsernameLength)
	msgUsernameFormat = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."

	usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}@.+\-_]+$`)
)

// ValidateLicenseNumber checks a driver license number. It is used by both
// the driver creation form and the license update form. The prefix and
// digit checks are independent, so a value failing both gets both messages.
func ValidateLicenseNumber(s string) []string {
	runes := []rune(s)

	var msgs []string
	if len(runes) != LicenseLength {
		msgs = append(msgs, fmt.Sprintf("%s (it has %d).", msgLicenseLength, len(runes)))
	}
	if !hasUpperPrefix(runes, LicensePrefixLength) {
		msgs = append(msgs, msgLicensePrefix)
	}
	if !hasDigitSuffix(runes, LicenseDigitsLength) {
		msgs = append(msgs, msgLicenseDigits)
	}
	return msgs
}

// ValidateUsername applies the creation-time username rules.
func ValidateUsername(s string) []string {
	if s == "" {
		return []string{msgRequired}
	}

	var msgs []string
	n := utf8.RuneCountInString(s)
	if n < MinUsernameLength {
		msgs = append(msgs, msgUsernameShort)
	}
	if n > MaxUsernameLength {
		msgs = append(msgs, fmt.Sprintf("%s (it has %d).", msgUsernameLong, n))
	}
	if !usernamePattern.MatchString(s) {
		msgs = append(msgs, msgUsernameFormat)
	}
	return msgs
}

func hasUpperPrefix(r []rune, n int) bool {
	if len(r) < n {
		return false
	}
	for _, c := range r[:n] {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

func hasDigitSuffix(r []rune, n int) bool {
	if len(r) < n {
		return false
	}
	for _, c := range r[len(r)-n:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
