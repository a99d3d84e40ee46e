package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/activations"
	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/app"
	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/articles"
	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/authz"
	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/observability"
	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/platform/db"
	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/sessions"
	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/status"
	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/team"
	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/users"
	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := asynqClient.Close(); err != nil {
			logger.Warn("asynq close", slog.Any("error", err))
		}
	}()
	enqueuer := jobs.NewEnqueuer(asynqClient)

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo, nil)

	activationsService := activations.NewService(activations.NewRepository(pool), usersService, enqueuer, cfg.ActivationTTL)
	usersService.SetActivator(activationsService)

	sessionsService := sessions.NewService(sessions.NewRepository(pool), usersService, cfg.SessionTTL)

	articlesService := articles.NewService(articles.NewRepository(pool))
	teamService := team.NewService(team.NewRepository(pool))

	metrics := observability.NewMetrics()

	mw := authz.Middleware{
		Auth:   sessionsService,
		Logger: logger,
		Secure: cfg.IsProduction(),
	}

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		Metrics:            metrics,
		SessionsHandler:    sessions.NewHandler(logger, sessionsService, mw, cfg.IsProduction()),
		UsersHandler:       users.NewHandler(logger, usersService, mw),
		ActivationsHandler: activations.NewHandler(logger, activationsService, mw),
		ArticlesHandler:    articles.NewHandler(logger, articlesService, mw),
		TeamHandler:        team.NewHandler(logger, teamService, mw),
		StatusHandler:      status.NewHandler(logger, pool),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
