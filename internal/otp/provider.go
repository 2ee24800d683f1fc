// Package otp abstracts the external phone-verification provider. The
// sell flow only ever sees the Provider interface plus a small set of
// sentinel errors it maps to user-facing retry/resend affordances.
package otp

import (
	"context"
	"errors"
)

// Provider errors, mirroring the identity provider's error codes.
var (
	ErrTooManyRequests = errors.New("too-many-requests")
	ErrInvalidCode     = errors.New("invalid-verification-code")
	ErrCodeExpired     = errors.New("code-expired")
	ErrInvalidPhone    = errors.New("invalid-phone-number")
)

// Provider starts and confirms phone-verification challenges.
type Provider interface {
	// Start sends a code to the phone and returns an opaque challenge id.
	Start(ctx context.Context, phone string) (string, error)
	// Confirm checks the code against an outstanding challenge.
	Confirm(ctx context.Context, challengeID, code string) error
}

// UserMessage maps a provider error to the message shown to the user.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrTooManyRequests):
		return "Too many attempts. Please wait a minute before requesting another code."
	case errors.Is(err, ErrInvalidCode):
		return "That code is incorrect. Please check and try again."
	case errors.Is(err, ErrCodeExpired):
		return "That code has expired. Tap resend to get a new one."
	case errors.Is(err, ErrInvalidPhone):
		return "Please enter a valid 10-digit mobile number."
	default:
		return "Could not verify your number right now. Please try again."
	}
}
