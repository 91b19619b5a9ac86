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

	"github.com/joho/godotenv"
	"github.com/monocle-dev/catalog/db"
	"github.com/monocle-dev/catalog/internal/auth"
	"github.com/monocle-dev/catalog/internal/config"
	"github.com/monocle-dev/catalog/internal/handlers"
	"github.com/monocle-dev/catalog/internal/logger"
	"github.com/monocle-dev/catalog/internal/router"
	"github.com/monocle-dev/catalog/internal/scheduler"
	"github.com/monocle-dev/catalog/internal/session"
	"go.uber.org/zap"
)

const (
	shutdownTimeout      = 10 * time.Second
	housekeepingInterval = 10 * time.Minute
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Env)

	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("catalog stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx := context.Background()

	if err := db.ConnectDatabase(cfg.Database.DSN); err != nil {
		return err
	}

	if err := db.MigrateDatabase(); err != nil {
		return err
	}

	if err := db.SeedAdmin(ctx, db.DB, cfg.Admin, zlog); err != nil {
		return err
	}

	issuer, err := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	if err != nil {
		return err
	}

	redisClient, err := db.ConnectRedis(ctx, cfg.Redis)

	if err != nil {
		return err
	}

	var (
		revoker  auth.Revoker
		sessions session.Store
	)

	// Redis expires keys itself; the fallbacks are swept on a schedule.
	housekeeping := scheduler.NewScheduler(zlog)
	defer housekeeping.Stop()

	if redisClient != nil {
		defer redisClient.Close()

		revoker = auth.NewRedisRevoker(redisClient)
		sessions = session.NewRedisStore(redisClient, cfg.SessionTTL)
		zlog.Info("using redis for revocation and page state", zap.String("addr", cfg.Redis.Addr))
	} else {
		dbRevoker := auth.NewDBRevoker(db.DB)
		memory := session.NewMemoryStore(cfg.SessionTTL)

		housekeeping.AddJob("prune-revoked-tokens", housekeepingInterval, dbRevoker.Prune)
		housekeeping.AddJob("sweep-page-state", housekeepingInterval, memory.Sweep)

		revoker = dbRevoker
		sessions = memory
		zlog.Warn("REDIS_ADDR not set, page state is kept in process memory")
	}

	r := router.NewRouter(router.Deps{
		DB:       db.DB,
		Issuer:   issuer,
		Revoker:  revoker,
		Sessions: sessions,
		Cookie: handlers.CookieConfig{
			Domain: cfg.Auth.CookieDomain,
			Secure: cfg.Auth.CookieSecure,
			MaxAge: cfg.Auth.TokenTTL,
		},
		AllowedOrigins: cfg.AllowedOrigins,
		Location:       time.Local,
		Jobs:           housekeeping,
		Logger:         zlog,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("HTTP server started", zap.String("port", cfg.HTTP.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-shutdown:
		zlog.Info("received shutdown signal, stopping gracefully")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	zlog.Info("HTTP server stopped")

	return nil
}
