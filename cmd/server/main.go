package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/devHanif-git/productivityHelper/config"
	"github.com/devHanif-git/productivityHelper/internal/api/handler"
	"github.com/devHanif-git/productivityHelper/internal/api/router"
	"github.com/devHanif-git/productivityHelper/internal/clock"
	"github.com/devHanif-git/productivityHelper/internal/notify"
	"github.com/devHanif-git/productivityHelper/internal/repository"
	"github.com/devHanif-git/productivityHelper/internal/scheduler"
	"github.com/devHanif-git/productivityHelper/internal/service"
	"github.com/devHanif-git/productivityHelper/pkg/database"
	applogger "github.com/devHanif-git/productivityHelper/pkg/logger"
	"github.com/devHanif-git/productivityHelper/pkg/redis"
)

func main() {
	// 1. load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config failed: %v\n", err)
		os.Exit(1)
	}

	// 2. initialize logging
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initializing logger failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting up",
		zap.Int("port", cfg.Server.Port),
		zap.String("base_url", cfg.Server.BaseURL),
		zap.String("timezone", cfg.Bot.Timezone),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. connect to the database and run migrations
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	logger.Info("database connected")

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("getting underlying sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	// 4. connect to Redis (optional: degrade instead of aborting, losing
	// job day-marks, startup catch-up, and rate limiting)
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis connection failed, day-marks and rate limiting disabled", zap.Error(err))
		rdb = nil
	}

	// 5. build the clock in the configured timezone
	loc, err := cfg.Bot.Location()
	if err != nil {
		logger.Fatal("resolving timezone failed", zap.Error(err))
	}
	clk := clock.NewSystemClock(loc)

	// 6. pick the notification transport
	var notifier notify.Notifier
	if cfg.Bot.TelegramToken != "" {
		notifier = notify.NewTelegramNotifier(cfg.Bot.TelegramToken, cfg.Notify.SendTimeout, logger)
		logger.Info("using telegram notifier")
	} else {
		notifier = notify.NewConsoleNotifier(logger)
		logger.Warn("no telegram token configured, notifications go to the log")
	}

	// 7. dependency injection: Repository → Service → Scheduler → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, clk, notifier, rdb, logger)

	sched, err := scheduler.New(svc, clk, rdb, cfg, logger)
	if err != nil {
		logger.Fatal("building scheduler failed", zap.Error(err))
	}
	sched.Start()

	h := handler.NewHandler(svc, clk, sched)

	// 8. set up routes
	engine := router.Setup(cfg, h, rdb, logger)

	// 9. start the HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// 10. wait for a shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", zap.String("signal", sig.String()))

	// stop the scheduler first so no job races the closing stores
	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
