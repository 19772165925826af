package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"tasknest/config"
	"tasknest/internal/delivery"
	"tasknest/internal/delivery/http"
	"tasknest/internal/delivery/http/middleware"
	"tasknest/internal/delivery/http/router/handler"
	"tasknest/internal/infra/auth"
	logs "tasknest/internal/infra/log"
	"tasknest/internal/infra/persistence/postgres"
	"tasknest/internal/usecase"
	"tasknest/internal/usecase/impl"

	"go.uber.org/fx"
)

// sessionCleanupInterval is how often expired session rows get purged.
const sessionCleanupInterval = time.Hour

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
			startServer,
			startSessionJanitor,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewRefreshTokenRepository,
			postgres.NewTodoRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewSessionService,
			impl.NewTodoService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewTodoHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
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

// startSessionJanitor purges expired session rows on a fixed interval for the
// lifetime of the process.
func startSessionJanitor(lc fx.Lifecycle, sessionUC usecase.SessionUsecase, logger *slog.Logger) {
	janitorCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ticker := time.NewTicker(sessionCleanupInterval)
				defer ticker.Stop()

				for {
					select {
					case <-janitorCtx.Done():
						return
					case <-ticker.C:
						if _, err := sessionUC.CleanupExpiredSessions(janitorCtx); err != nil {
							logger.Error("Session cleanup failed", slog.Any("error", err))
						}
					}
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()

			return nil
		},
	})
}
