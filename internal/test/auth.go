package test

import (
	"context"
	"errors"
	"sync"
	"time"

	"suppliertracker/internal/domain/model"
	"suppliertracker/internal/identity"
	pkgAuth "suppliertracker/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(int64, string) (string, time.Time, error)
	ParseFn func(string) (*pkgAuth.Claims, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(userID int64, email string) (string, time.Time, error) {
	if s.IssueFn != nil {
		return s.IssueFn(userID, email)
	}
	return "token", time.Now().Add(time.Hour), nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (*pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return &pkgAuth.Claims{UserID: 1, Email: "user@example.com", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// ProviderStub simulates the identity provider boundary.
type ProviderStub struct {
	mu       sync.Mutex
	Session  *model.Session
	Err      error
	SignInFn func(context.Context, string, string) (*model.Session, error)
	Subs     []func(identity.Event)
	SignOuts []string
}

// SignInWithPassword returns the configured session or delegates.
func (s *ProviderStub) SignInWithPassword(ctx context.Context, email, password string) (*model.Session, error) {
	if s.SignInFn != nil {
		return s.SignInFn(ctx, email, password)
	}
	return s.Session, s.Err
}

// CurrentSession returns the configured session and error.
func (s *ProviderStub) CurrentSession(ctx context.Context, token string) (*model.Session, error) {
	return s.Session, s.Err
}

// SignOut records the token and fires the signed-out event.
func (s *ProviderStub) SignOut(ctx context.Context, token string) error {
	s.mu.Lock()
	s.SignOuts = append(s.SignOuts, token)
	subs := make([]func(identity.Event), len(s.Subs))
	copy(subs, s.Subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(identity.EventSignedOut)
	}
	return nil
}

// OnSessionChange registers a subscriber.
func (s *ProviderStub) OnSessionChange(fn func(identity.Event)) {
	s.mu.Lock()
	s.Subs = append(s.Subs, fn)
	s.mu.Unlock()
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
var _ identity.Provider = (*ProviderStub)(nil)
