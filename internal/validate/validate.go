package validate

import (
	"regexp"
	"strings"
	"time"
)

var (
	// Indian mobile: 10 digits starting 6-9, optional +91/0 prefix handled by Phone().
	reMobile  = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	rePincode = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	reID      = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reOTP     = regexp.MustCompile(`^[0-9]{6}$`)
	reSlot    = regexp.MustCompile(`^[0-9]{2}:[0-9]{2}-[0-9]{2}:[0-9]{2}$`)
)

// Phone normalizes and validates an Indian mobile number, stripping an
// optional +91 or leading 0.
func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimPrefix(s, "+91")
	s = strings.TrimPrefix(s, "0")
	return s, reMobile.MatchString(s)
}

// Pincode validates a 6-digit Indian postal code.
func Pincode(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePincode.MatchString(s)
}

// ID validates a simple resource identifier (brand/device/variant/city ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// OTPCode validates a 6-digit verification code.
func OTPCode(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reOTP.MatchString(s)
}

// Name validates a displayable customer name.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

// Address validates a free-form pickup address.
func Address(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 10 || len(s) > 300 {
		return "", false
	}
	return s, true
}

// PickupDate accepts YYYY-MM-DD dates from today onward.
func PickupDate(s string, now time.Time) (string, bool) {
	s = strings.TrimSpace(s)
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return "", false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if d.Before(today) {
		return "", false
	}
	return s, true
}

// Slot validates a pickup time window like "10:00-13:00".
func Slot(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reSlot.MatchString(s)
}

// Password enforces the admin password policy.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 64 {
		return false
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}
