package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"identity_backend/internal/app/di"
	"identity_backend/internal/app/router"
	"identity_backend/internal/config"
	"identity_backend/internal/feature/identity/transport/handler"
	"identity_backend/internal/feature/identity/usecase"
	"identity_backend/internal/platform/db"
	jwtmw "identity_backend/internal/platform/jwt"
	"identity_backend/internal/shared/ratelimiter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Tokens signed with an empty secret are rejected by the middleware.
	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set. Set a strong secret in production.")
	}

	// db
	gormDB, err := db.OpenDB(cfg.DB)
	if err != nil {
		slog.Error("failed to open database", "error", err, "driver", cfg.DB.Driver)
		os.Exit(1)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		slog.Error("failed to get sql.DB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	// Store
	stores := di.NewDefaultStores(gormDB)

	// Usecase
	accountUC := usecase.NewAccountUsecase(stores.Accounts,
		jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTExpiration), cfg.Lockout, uuid.NewString)
	roleUC := usecase.NewRoleUsecase(stores.Roles, uuid.NewString)

	// Handler
	accountH := handler.NewAccountHandler(accountUC)
	roleH := handler.NewRoleHandler(roleUC)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	limiter := ratelimiter.NewRateLimiter(cfg.AuthRatePerMinute, 10*time.Minute)
	go limiter.RunCleanup(ctx, 5*time.Minute)

	r := router.NewRouter(sqlDB, limiter, accountH, roleH)

	slog.Info("starting server", "addr", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
