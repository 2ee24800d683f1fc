package otp

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDevProvider_StartConfirm(t *testing.T) {
	p := NewDevProvider("123456")
	ctx := context.Background()

	id, err := p.Start(ctx, "9876543210")
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Confirm(ctx, id, "000000"); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("want invalid-verification-code, got %v", err)
	}
	if err := p.Confirm(ctx, id, "123456"); err != nil {
		t.Fatalf("correct code rejected: %v", err)
	}
	// challenge is single-use
	if err := p.Confirm(ctx, id, "123456"); !errors.Is(err, ErrCodeExpired) {
		t.Fatalf("reused challenge should be expired, got %v", err)
	}
}

func TestDevProvider_RejectsBadPhone(t *testing.T) {
	p := NewDevProvider("123456")
	if _, err := p.Start(context.Background(), "12345"); !errors.Is(err, ErrInvalidPhone) {
		t.Fatalf("want invalid-phone-number, got %v", err)
	}
}

func TestDevProvider_RateLimitsStarts(t *testing.T) {
	p := NewDevProvider("123456")
	ctx := context.Background()
	for i := 0; i < maxStartsPerMin; i++ {
		if _, err := p.Start(ctx, "9876543210"); err != nil {
			t.Fatalf("start %d failed: %v", i, err)
		}
	}
	if _, err := p.Start(ctx, "9876543210"); !errors.Is(err, ErrTooManyRequests) {
		t.Fatalf("want too-many-requests, got %v", err)
	}
	// a different number is not throttled
	if _, err := p.Start(ctx, "9123456780"); err != nil {
		t.Fatalf("unrelated phone throttled: %v", err)
	}
}

func TestDevProvider_CodeExpiry(t *testing.T) {
	p := NewDevProvider("123456")
	base := time.Now()
	p.now = func() time.Time { return base }

	id, err := p.Start(context.Background(), "9876543210")
	if err != nil {
		t.Fatal(err)
	}
	p.now = func() time.Time { return base.Add(challengeTTL + time.Second) }
	if err := p.Confirm(context.Background(), id, "123456"); !errors.Is(err, ErrCodeExpired) {
		t.Fatalf("want code-expired, got %v", err)
	}
}
