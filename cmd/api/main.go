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

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/vaultpass/passmate/internal/config"
	"github.com/vaultpass/passmate/internal/handler"
	"github.com/vaultpass/passmate/internal/middleware"
	"github.com/vaultpass/passmate/internal/password"
	"github.com/vaultpass/passmate/internal/repository"
	"github.com/vaultpass/passmate/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The audit log is optional; without a DSN generation works unchanged.
	var audit service.AuditRecorder
	if cfg.DatabaseDSN != "" {
		db, err := repository.NewDB(ctx, cfg.DatabaseDSN)
		if err != nil {
			slog.Warn("database connection failed, audit log disabled", "error", err)
		} else {
			defer db.Close()
			repo := repository.NewAuditRepository(db)
			if err := repo.EnsureSchema(ctx); err != nil {
				slog.Warn("creating audit schema failed, audit log disabled", "error", err)
			} else {
				audit = repo
			}
		}
	}

	genService := service.NewGeneratorService(password.NewGenerator(nil), audit, cfg.DefaultLength, slog.Default())
	genHandler := handler.NewGeneratorHandler(genService)
	limiter := middleware.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, genHandler, limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env,
			"auth", cfg.TokenSecret != "", "audit", audit != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

func newRouter(cfg config.Config, genHandler *handler.GeneratorHandler, limiter *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.TokenSecret != "" {
			r.Use(middleware.TokenAuth(cfg.TokenSecret))
		}
		r.Get("/classes", genHandler.HandleClasses)

		r.Group(func(r chi.Router) {
			r.Use(limiter.Middleware)
			r.Post("/generate", genHandler.HandleGenerate)
			r.Post("/strength", genHandler.HandleStrength)
		})
	})

	return r
}
