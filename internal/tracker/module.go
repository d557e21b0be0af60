package tracker

import (
	"log/slog"

	"go.uber.org/fx"

	"suppliertracker/internal/config"
	"suppliertracker/internal/domain/repository"
	"suppliertracker/internal/identity"
)

type gateParams struct {
	fx.In

	Provider identity.Provider
	Logger   *slog.Logger
}

func newSessionGate(p gateParams) *SessionGate {
	return NewSessionGate(p.Provider, NewLogNavigator(p.Logger))
}

type managerParams struct {
	fx.In

	Gate    *SessionGate
	Orders  repository.OrderRepository
	Objects repository.ObjectStore
	Config  *config.Config
	Logger  *slog.Logger
}

func newManager(p managerParams) *Manager {
	return NewManager(func() *Page {
		return NewPage(p.Gate, p.Orders, p.Objects, p.Config.AdminEmails, p.Logger)
	})
}

var Module = fx.Provide(
	newSessionGate,
	newManager,
)
