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

	"parking-backend/config"
	"parking-backend/internal/api"
	"parking-backend/internal/database"
	"parking-backend/internal/middleware"
	"parking-backend/internal/services"
	"parking-backend/internal/sweeper"
	"parking-backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	}); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to connect database", zap.Error(err), zap.String("driver", cfg.DBDriver))
	}
	if err := database.ConnectRedis(cfg); err != nil {
		logger.Log.Fatal("Failed to connect redis", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Log.Fatal("Failed to migrate database", zap.Error(err))
	}

	initAdminUser(cfg)

	sweep := sweeper.New(services.CleanupExpiredReservations, cfg.SweepInterval,
		sweeper.ClockFunc(func() time.Time { return services.Now() }), logger.Log)
	if err := sweep.Start(); err != nil {
		logger.Log.Fatal("Failed to start sweeper", zap.Error(err))
	}

	stopCleanup := make(chan struct{})
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	limiter.StartCleanup(10*time.Minute, stopCleanup)

	router := api.NewRouter(api.Options{
		Sweeper:     sweep,
		RateLimiter: limiter,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("Server listening", zap.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Failed to run server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server shutdown failed", zap.Error(err))
	}
	sweep.Stop()
	close(stopCleanup)
}

func initAdminUser(cfg *config.Config) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}

	created, err := services.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		logger.Log.Fatal("Failed to create admin user", zap.Error(err))
	}
	if created {
		logger.Log.Info("Admin user created", zap.String("email", cfg.AdminEmail))
	} else {
		logger.Log.Info("Admin user already exists", zap.String("email", cfg.AdminEmail))
	}
}
