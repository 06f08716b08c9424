package main

import (
	"VNumbers/internal/config"
	"VNumbers/internal/events"
	"VNumbers/internal/handlers"
	"VNumbers/internal/lock"
	"VNumbers/internal/middleware"
	"VNumbers/internal/repo"
	"VNumbers/internal/service"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

var buildVersion = "dev"

func main() {
	cfg := config.NewConfig()
	if cfg.Version {
		fmt.Println("vnumbers server", buildVersion)
		return
	}

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}
	store := repo.NewStore(gormDB)

	// лок жизненного цикла: Redis, если задан, иначе локальный
	var locker lock.Locker = lock.NewLocalLocker()
	if cfg.RedisAddr != "" {
		client := lock.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			sugar.Fatalw("redis unavailable", "addr", cfg.RedisAddr, "error", err)
		}
		locker = lock.NewRedisLocker(client, lock.DefaultRedisKey, cfg.LockTTL())
	}

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, sugar)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			sugar.Errorw("Failed to close event publisher", "error", err)
		}
	}()

	numberService := service.NewNumberService(store, sugar)
	messageService := service.NewMessageService(store, publisher, sugar)
	lifecycleService := service.NewLifecycleService(store, locker, publisher, sugar)
	tracker := service.NewCooldownTracker(store.Repos().Cooldowns, nil)

	h := handlers.NewHandler(numberService, messageService, lifecycleService, tracker, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
		"tls", cfg.EnableHTTPS,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"DatabaseDSN", cfg.DatabaseDSN,
		"DeletionCooldownMin", cfg.DeletionCooldownMin,
		"RecoveryCooldownMin", cfg.RecoveryCooldownMin,
		"RedisAddr", cfg.RedisAddr,
		"LockTTL", cfg.LockTTL(),
		"KafkaBrokers", cfg.KafkaBrokers,
	)

	certFile, keyFile, err := cfg.ServerTLS()
	if err != nil {
		sugar.Fatalw("invalid TLS config", "error", err)
	}

	srv := &http.Server{Addr: addr, Handler: h.Router}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("Server shutdown failed", "error", err)
		}
	}()

	if err := serve(srv, certFile, keyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Fatalw("Server failed", "error", err)
	}
	sugar.Infow("Server stopped")
}

// serve запускает TLS, если заданы сертификат и ключ, иначе обычный HTTP.
func serve(srv *http.Server, certFile, keyFile string) error {
	if certFile != "" {
		return srv.ListenAndServeTLS(certFile, keyFile)
	}
	return srv.ListenAndServe()
}
