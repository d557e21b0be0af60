package identity

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	domainErrors "suppliertracker/internal/domain/errors"
	"suppliertracker/internal/domain/model"
	"suppliertracker/internal/domain/repository"
	pkgAuth "suppliertracker/internal/pkg/auth"
)

// Event describes a session state change broadcast to subscribers.
type Event string

const EventSignedOut Event = "SIGNED_OUT"

// Provider is the identity/session boundary the order page depends on.
type Provider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*model.Session, error)
	CurrentSession(ctx context.Context, token string) (*model.Session, error)
	SignOut(ctx context.Context, token string) error
	OnSessionChange(fn func(Event))
}

// Service implements Provider on top of the user repository and token strategy.
type Service struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy

	mu      sync.Mutex
	revoked map[string]time.Time
	subs    []func(Event)
}

// NewService constructs the identity service.
func NewService(users repository.UserRepository, hasher pkgAuth.PasswordHasher, tokens pkgAuth.Strategy) *Service {
	return &Service{
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		revoked: make(map[string]time.Time),
	}
}

// Register creates a new account and returns an active session for it.
func (s *Service) Register(ctx context.Context, email, password string) (*model.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domainErrors.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	usr, err := s.users.Create(ctx, email, hash)
	if err != nil {
		return nil, err
	}

	return s.issueSession(usr)
}

// SignInWithPassword validates credentials and returns an active session.
func (s *Service) SignInWithPassword(ctx context.Context, email, password string) (*model.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domainErrors.ErrInvalidCredentials
	}

	usr, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, domainErrors.ErrInvalidCredentials
	}

	return s.issueSession(usr)
}

// CurrentSession resolves the token to an active session. An invalid, expired
// or revoked token yields (nil, nil): no session rather than an error.
func (s *Service) CurrentSession(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, nil
	}

	s.mu.Lock()
	_, isRevoked := s.revoked[token]
	s.mu.Unlock()
	if isRevoked {
		return nil, nil
	}

	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, nil
	}

	usr, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &model.Session{
		Token:     token,
		UserID:    usr.ID,
		Email:     usr.Email,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

// SignOut revokes the token and notifies session-change subscribers.
func (s *Service) SignOut(ctx context.Context, token string) error {
	if token != "" {
		expires := time.Now().Add(24 * time.Hour)
		if claims, err := s.tokens.ParseToken(token); err == nil {
			expires = claims.ExpiresAt
		}

		s.mu.Lock()
		now := time.Now()
		for tok, exp := range s.revoked {
			if exp.Before(now) {
				delete(s.revoked, tok)
			}
		}
		s.revoked[token] = expires
		s.mu.Unlock()
	}

	s.notify(EventSignedOut)
	return nil
}

// OnSessionChange registers a callback invoked on session events.
func (s *Service) OnSessionChange(fn func(Event)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *Service) notify(event Event) {
	s.mu.Lock()
	subs := make([]func(Event), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(event)
	}
}

func (s *Service) issueSession(usr *model.User) (*model.Session, error) {
	token, expires, err := s.tokens.IssueToken(usr.ID, usr.Email)
	if err != nil {
		return nil, err
	}
	return &model.Session{
		Token:     token,
		UserID:    usr.ID,
		Email:     usr.Email,
		ExpiresAt: expires,
	}, nil
}
