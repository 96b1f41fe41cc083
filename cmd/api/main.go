package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fittrack/fittrack/internal/api"
	"github.com/fittrack/fittrack/internal/api/middleware"
	"github.com/fittrack/fittrack/internal/core/service"
	"github.com/fittrack/fittrack/internal/infrastructure/config"
	mongodb "github.com/fittrack/fittrack/internal/infrastructure/db/mongo"
	redisdb "github.com/fittrack/fittrack/internal/infrastructure/db/redis"
	"github.com/fittrack/fittrack/internal/infrastructure/http/handlers"
	"github.com/fittrack/fittrack/internal/infrastructure/mail"
	"github.com/fittrack/fittrack/internal/infrastructure/queue"
	"github.com/fittrack/fittrack/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fittrack-api: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadServer(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "fittrack-api",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	userRepo := mongodb.NewAuthRepository(db)
	workoutRepo := mongodb.NewWorkoutRepository(db)
	mealRepo := mongodb.NewMealRepository(db)
	if err := mongodb.EnsureIndexes(ctx, userRepo, workoutRepo, mealRepo); err != nil {
		return err
	}

	dispatcher := queue.NewDispatcher(cfg.MailWorkers, mail.NewLogMailer(logger.Component("mail"), cfg.ResetURL), logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	resets := redisdb.NewResetTokenStore(rdb, time.Hour)

	e := api.NewRouter(api.Deps{
		Auth:         service.NewAuthService(userRepo, resets, dispatcher, cfg.JWTSecret, cfg.TokenTTL, logger.Component("auth")),
		Users:        service.NewUserService(userRepo),
		Workouts:     service.NewWorkoutService(workoutRepo, logger.Component("workouts")),
		Meals:        service.NewMealService(mealRepo, logger.Component("meals")),
		JWTSecret:    cfg.JWTSecret,
		LoginLimiter: middleware.NewIPRateLimiter(cfg.LoginRate, cfg.LoginBurst),
		Checks: map[string]handlers.Check{
			"mongodb": handlers.MongoCheck(db),
			"redis":   handlers.RedisCheck(rdb),
		},
		Log: log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
