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

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mlcinall/mentor-service/config"
	"github.com/mlcinall/mentor-service/internal/api/handler"
	"github.com/mlcinall/mentor-service/internal/api/middleware"
	"github.com/mlcinall/mentor-service/internal/api/router"
	"github.com/mlcinall/mentor-service/internal/repository"
	"github.com/mlcinall/mentor-service/internal/service"
	"github.com/mlcinall/mentor-service/pkg/database"
	"github.com/mlcinall/mentor-service/pkg/jwt"
	"github.com/mlcinall/mentor-service/pkg/lock"
	applogger "github.com/mlcinall/mentor-service/pkg/logger"
	"github.com/mlcinall/mentor-service/pkg/profile"
	"github.com/mlcinall/mentor-service/pkg/redis"
)

func main() {
	// 1. .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}

	// 2. config
	cfg, err := config.Load(os.Getenv("MENTOR_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 3. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting mentor-service",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.Bool("carve_on_reject", cfg.Booking.CarveOnReject),
	)

	// 4. database + migrations
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	// 5. redis is optional: without it locks and rate limits stay in-process
	var (
		locker  service.MentorLocker
		limiter middleware.SlidingWindow
	)
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, using in-process locks and rate limits", zap.Error(err))
		rdb = nil
		locker = lock.NewLocal()
	} else {
		locker = lock.NewRedis(rdb, cfg.Booking.LockTTL, cfg.Booking.LockWait, logger)
		limiter = rdb
	}

	// 6. wiring: Repository → Service → Handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(db)
	profiles := profile.NewClient(&cfg.Profile, logger)
	svc := service.NewService(cfg, repo, locker, profiles, logger)
	h := handler.NewHandler(svc)

	engine := router.Setup(cfg, h, jwtMgr, limiter, logger)

	// 7. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("close database failed", zap.Error(err))
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
