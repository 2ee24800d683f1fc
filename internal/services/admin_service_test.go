package services_test

import (
	"testing"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"gizmocash/internal/repos"
	"gizmocash/internal/services"
)

func adminSvc(t *testing.T) *services.AdminService {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	return services.NewAdminService(repos.NewAdminRepo(db), "test-secret", 30*time.Minute, 7*24*time.Hour)
}

func TestAdminLogin(t *testing.T) {
	svc := adminSvc(t)
	u, err := svc.Login("admin@gizmocash.test", "Gizmo@dm1n")
	if err != nil || u == nil {
		t.Fatalf("seeded admin login failed: %v", err)
	}
	if _, err := svc.Login("admin@gizmocash.test", "wrong"); err != services.ErrBadCreds {
		t.Fatalf("want ErrBadCreds, got %v", err)
	}
	if _, err := svc.Login("nobody@gizmocash.test", "Gizmo@dm1n"); err != services.ErrBadCreds {
		t.Fatalf("want ErrBadCreds for unknown email, got %v", err)
	}
}

func TestAdminSession_IdleExpiry(t *testing.T) {
	svc := adminSvc(t)
	base := time.Now()
	svc.Now = func() time.Time { return base }

	tok, exp, err := svc.IssueToken("adm-root", false)
	if err != nil {
		t.Fatal(err)
	}
	if got := exp.Sub(base); got != 30*time.Minute {
		t.Fatalf("idle token ttl: want 30m, got %v", got)
	}

	sess, err := svc.Validate(tok)
	if err != nil || sess.Admin.ID != "adm-root" || sess.Remember {
		t.Fatalf("validate: %+v (%v)", sess, err)
	}

	// Activity re-issues a fresh 30-minute token.
	svc.Now = func() time.Time { return base.Add(20 * time.Minute) }
	tok2, exp2, err := svc.Refresh(sess)
	if err != nil || tok2 == "" {
		t.Fatalf("refresh: %v", err)
	}
	if got := exp2.Sub(base.Add(20 * time.Minute)); got != 30*time.Minute {
		t.Fatalf("refreshed ttl: want 30m, got %v", got)
	}

	// 31 minutes of silence ends the session.
	svc.Now = func() time.Time { return base.Add(31 * time.Minute) }
	if _, err := svc.Validate(tok); err == nil {
		t.Fatal("expired token validated")
	}
}

func TestAdminSession_RememberMe(t *testing.T) {
	svc := adminSvc(t)
	base := time.Now()
	svc.Now = func() time.Time { return base }

	tok, exp, err := svc.IssueToken("adm-root", true)
	if err != nil {
		t.Fatal(err)
	}
	if got := exp.Sub(base); got != 7*24*time.Hour {
		t.Fatalf("remember token ttl: want 168h, got %v", got)
	}

	// Still valid days later, and Refresh leaves it alone.
	svc.Now = func() time.Time { return base.Add(6 * 24 * time.Hour) }
	sess, err := svc.Validate(tok)
	if err != nil || !sess.Remember {
		t.Fatalf("remember session invalid: %+v (%v)", sess, err)
	}
	tok2, exp2, err := svc.Refresh(sess)
	if err != nil || tok2 != "" || !exp2.Equal(sess.ExpiresAt) {
		t.Fatalf("remember refresh should be a no-op, got tok=%q exp=%v (%v)", tok2, exp2, err)
	}
}

func TestAdminSession_GarbageToken(t *testing.T) {
	svc := adminSvc(t)
	if _, err := svc.Validate("not.a.jwt"); err == nil {
		t.Fatal("garbage token validated")
	}
}
