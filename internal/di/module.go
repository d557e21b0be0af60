package di

import (
	"go.uber.org/fx"

	"suppliertracker/internal/app"
	"suppliertracker/internal/config"
	"suppliertracker/internal/identity"
	"suppliertracker/internal/logger"
	"suppliertracker/internal/pkg/auth"
	"suppliertracker/internal/server/http/router"
	"suppliertracker/internal/storage/object"
	"suppliertracker/internal/storage/postgres"
	"suppliertracker/internal/tracker"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		object.Module,
		identity.Module,
		tracker.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
