package main

import (
	"Almonium/internal/config"
	"Almonium/internal/handlers"
	"Almonium/internal/middleware"
	"Almonium/internal/repo"
	"Almonium/internal/service"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const defaultServerDB = "almonium.db"

func main() {
	cfg := config.NewConfig()

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

	dsn := cfg.DatabaseDSN
	if dsn == "" {
		dsn = defaultServerDB
	}
	gormDB, err := repo.InitDB(dsn)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	tokens := service.NewTokenIssuer(cfg.AuthSecret, cfg.TokenTTL)
	userRepo := repo.NewUserRepository(gormDB)
	userService := service.NewUserService(userRepo, tokens)

	h := handlers.NewHandler(userService, tokens, sugar, cfg)
	defer h.Close()

	srv := &http.Server{
		Addr:              cfg.BaseURL,
		Handler:           h.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"TokenTTL", cfg.TokenTTL,
		"SigninRPS", cfg.SigninRPS,
	)
	sugar.Infow("Starting server", "addr", srv.Addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("shutdown failed", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Fatalw("Server failed", "error", err)
	}
	sugar.Infow("Server stopped")
}
