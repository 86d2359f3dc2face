package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"funcity/internal/app"
	"funcity/internal/cache"
	"funcity/internal/config"
	"funcity/internal/database"
	"funcity/internal/modules/payment"
	jwtsvc "funcity/internal/pkg/jwt"
	"funcity/internal/pkg/mq"
	"funcity/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(cfg.App.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if config.IsProdLike(cfg.App.Env) {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("database_connect_failed", zap.Error(err))
	}
	if err := repository.Migrate(db); err != nil {
		logger.Fatal("database_migrate_failed", zap.Error(err))
	}

	deps := app.Deps{
		Config:  cfg,
		DB:      db,
		Log:     logger,
		Tokens:  jwtsvc.New(cfg.JWT.Secret, cfg.JWT.TTL),
		Gateway: payment.NewClient(cfg.Gateway, nil, logger.Named("gateway")),
	}

	if cfg.Redis.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
		cancel()
		if err != nil {
			logger.Warn("redis_unavailable_slot_cache_disabled", zap.Error(err))
		} else {
			defer client.Close()
			deps.Slots = cache.NewSlotCache(client, cfg.Redis.SlotsTTL)
		}
	}

	if cfg.AMQP.URL != "" {
		pub, err := mq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			logger.Warn("amqp_unavailable_events_disabled", zap.Error(err))
		} else {
			defer pub.Close()
			deps.Events = pub
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           app.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http_server_started", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Env), zap.String("gateway_env", cfg.Gateway.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http_server_failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http_server_shutdown_failed", zap.Error(err))
	}
	logger.Info("http_server_stopped")
}

func newLogger(env string) (*zap.Logger, error) {
	if config.IsProdLike(env) {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
