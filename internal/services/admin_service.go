package services

import (
	"errors"
	"time"

	"gizmocash/internal/domain"
	"gizmocash/internal/repos"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid email or password")

// AdminService authenticates back-office users and issues session
// tokens: 30 minutes of inactivity by default (extended on every
// authenticated request), or 7 days when "remember me" was checked.
type AdminService struct {
	Admins      *repos.AdminRepo
	Secret      []byte
	IdleTTL     time.Duration
	RememberTTL time.Duration
	Now         func() time.Time
}

func NewAdminService(admins *repos.AdminRepo, secret string, idleTTL, rememberTTL time.Duration) *AdminService {
	return &AdminService{
		Admins:      admins,
		Secret:      []byte(secret),
		IdleTTL:     idleTTL,
		RememberTTL: rememberTTL,
		Now:         time.Now,
	}
}

type sessionClaims struct {
	Remember bool `json:"remember"`
	jwt.RegisteredClaims
}

// Session is the decoded admin session handed to handlers.
type Session struct {
	Admin     *domain.AdminUser
	Remember  bool
	ExpiresAt time.Time
}

func (s *AdminService) Login(email, password string) (*domain.AdminUser, error) {
	u, err := s.Admins.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	return u, nil
}

// IssueToken signs a session token for an authenticated admin.
func (s *AdminService) IssueToken(adminID string, remember bool) (string, time.Time, error) {
	ttl := s.IdleTTL
	if remember {
		ttl = s.RememberTTL
	}
	exp := s.Now().Add(ttl)
	claims := sessionClaims{
		Remember: remember,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(s.Now()),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	return tok, exp, err
}

// Validate parses a session token and loads its admin. Expired or
// malformed tokens return an error; callers redirect to login.
func (s *AdminService) Validate(token string) (*Session, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.Secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.Now() }))
	if err != nil || !parsed.Valid {
		return nil, errors.New("invalid session")
	}
	admin, err := s.Admins.ByID(claims.Subject)
	if err != nil {
		return nil, errors.New("unknown admin")
	}
	return &Session{
		Admin:     admin,
		Remember:  claims.Remember,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Refresh re-issues a short-lived token so activity keeps extending the
// 30-minute window. Remember-me tokens keep their original expiry.
func (s *AdminService) Refresh(sess *Session) (string, time.Time, error) {
	if sess.Remember {
		return "", sess.ExpiresAt, nil
	}
	return s.IssueToken(sess.Admin.ID, false)
}
