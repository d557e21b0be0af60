package tracker

import (
	"context"
	"log/slog"

	domainErrors "suppliertracker/internal/domain/errors"
	"suppliertracker/internal/domain/model"
	"suppliertracker/internal/identity"
)

// Navigator receives the redirect signal when no session is available.
type Navigator interface {
	RedirectToLogin()
}

// LogNavigator records each redirect request; the transport layer turns the
// accompanying ErrNoSession into its own login redirect.
type LogNavigator struct {
	logger *slog.Logger
}

func NewLogNavigator(logger *slog.Logger) *LogNavigator {
	return &LogNavigator{logger: logger}
}

func (n *LogNavigator) RedirectToLogin() {
	n.logger.Info("redirecting to login")
}

// SessionGate confirms an active session before order-page operations run
// and watches the identity provider for sign-out.
type SessionGate struct {
	provider identity.Provider
	nav      Navigator
}

// NewSessionGate builds the gate and subscribes it to session-change events:
// a sign-out immediately sends the principal back to the login surface.
func NewSessionGate(provider identity.Provider, nav Navigator) *SessionGate {
	g := &SessionGate{provider: provider, nav: nav}
	provider.OnSessionChange(func(e identity.Event) {
		if e == identity.EventSignedOut {
			g.nav.RedirectToLogin()
		}
	})
	return g
}

// Require yields the active session for the token. A provider failure is
// surfaced as-is; the absence of a session redirects to login and returns
// ErrNoSession.
func (g *SessionGate) Require(ctx context.Context, token string) (*model.Session, error) {
	session, err := g.provider.CurrentSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		g.nav.RedirectToLogin()
		return nil, domainErrors.ErrNoSession
	}
	return session, nil
}
