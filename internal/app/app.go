package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"suppliertracker/internal/config"
	"suppliertracker/internal/domain/repository"
	"suppliertracker/internal/server/http/handlers"
	"suppliertracker/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewTrackerFacade,
		func(f *TrackerFacade) handlers.TrackerFacade { return f },
		newHTTPServer,
		newAttachmentSweeper,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type sweeperParams struct {
	fx.In

	Orders  repository.OrderRepository
	Objects repository.ObjectStore
	Config  *config.Config
	Logger  *slog.Logger
}

func newAttachmentSweeper(p sweeperParams) *worker.AttachmentSweeper {
	return worker.NewAttachmentSweeper(
		p.Orders,
		p.Objects,
		p.Config.SweepInterval,
		p.Config.SweepMinAge,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Sweeper    *worker.AttachmentSweeper
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting suppliertracker", slog.String("addr", p.Server.Addr))
			// the start context is released once startup completes; the
			// sweeper needs a lifetime of its own
			p.Sweeper.Start(context.Background())
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Sweeper.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("suppliertracker stopped")
			return nil
		},
	})
}
