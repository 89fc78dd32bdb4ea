package main

import (
	"context"
	"log/slog"
	"os"

	"locator/config"
	"locator/internal/delivery"
	"locator/internal/delivery/api"
	"locator/internal/delivery/api/middleware"
	"locator/internal/delivery/api/router/handler"
	"locator/internal/infra/auth"
	"locator/internal/infra/directions"
	"locator/internal/infra/directory"
	logs "locator/internal/infra/log"
	"locator/internal/infra/metrics"
	"locator/internal/infra/persistence"
	"locator/internal/infra/platform"
	"locator/internal/usecase"
	"locator/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			registerSessionShutdown,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
		),
		metrics.Module,
	)
}

func injectRepo() fx.Option {
	return persistence.Module
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			directions.NewClient,
			directory.NewDirectory,
		),
		platform.Module,
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewRouteResolver,
			impl.NewViewportFitter,
			impl.NewSessionService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewSessionHandler,
			handler.NewViewHandler,
			handler.NewEventHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// registerSessionShutdown closes every open session, discarding in-flight work, on stop
func registerSessionShutdown(lc fx.Lifecycle, sessions usecase.SessionUsecase, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing user sessions")
			sessions.Shutdown(ctx)

			return nil
		},
	})
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
