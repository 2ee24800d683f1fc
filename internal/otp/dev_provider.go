package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	challengeTTL    = 5 * time.Minute
	maxStartsPerMin = 3
)

type challenge struct {
	phone   string
	code    string
	expires time.Time
}

// DevProvider is an in-memory provider for development and tests. Codes
// are logged, never sent; a fixed override code can be configured so
// manual walkthroughs don't depend on reading logs.
type DevProvider struct {
	mu         sync.Mutex
	challenges map[string]challenge
	starts     map[string][]time.Time // per-phone start timestamps
	fixedCode  string
	now        func() time.Time
	// OnCode receives each issued code; main wires this to the log.
	OnCode func(phone, code string)
}

func NewDevProvider(fixedCode string) *DevProvider {
	return &DevProvider{
		challenges: make(map[string]challenge),
		starts:     make(map[string][]time.Time),
		fixedCode:  fixedCode,
		now:        time.Now,
	}
}

func (p *DevProvider) Start(_ context.Context, phone string) (string, error) {
	if len(phone) != 10 {
		return "", ErrInvalidPhone
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	recent := p.starts[phone][:0]
	for _, t := range p.starts[phone] {
		if now.Sub(t) < time.Minute {
			recent = append(recent, t)
		}
	}
	if len(recent) >= maxStartsPerMin {
		p.starts[phone] = recent
		return "", ErrTooManyRequests
	}
	p.starts[phone] = append(recent, now)

	code := p.fixedCode
	if code == "" {
		n, _ := rand.Int(rand.Reader, big.NewInt(1000000))
		code = fmt.Sprintf("%06d", n.Int64())
	}

	id := uuid.NewString()
	p.challenges[id] = challenge{phone: phone, code: code, expires: now.Add(challengeTTL)}
	if p.OnCode != nil {
		p.OnCode(phone, code)
	}
	return id, nil
}

func (p *DevProvider) Confirm(_ context.Context, challengeID, code string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch, ok := p.challenges[challengeID]
	if !ok {
		return ErrCodeExpired
	}
	if p.now().After(ch.expires) {
		delete(p.challenges, challengeID)
		return ErrCodeExpired
	}
	if ch.code != code {
		return ErrInvalidCode
	}
	delete(p.challenges, challengeID)
	return nil
}
