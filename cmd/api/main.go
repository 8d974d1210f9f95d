package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/rental-service/internal/cache"
	"github.com/Dan9191/rental-service/internal/config"
	"github.com/Dan9191/rental-service/internal/handler"
	"github.com/Dan9191/rental-service/internal/integrations/geocode"
	"github.com/Dan9191/rental-service/internal/repository"
	"github.com/Dan9191/rental-service/internal/scheduler"
	"github.com/Dan9191/rental-service/internal/service"
	"github.com/Dan9191/rental-service/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Geocode cache: shared when redis is configured
	var geoCache cache.Cache = cache.NewMemory(cfg.GeocodeCacheTTL, cfg.GeocodeCacheSize)
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedis(context.Background(), cfg.RedisAddr, "geocode:", cfg.GeocodeCacheTTL)
		if err != nil {
			logger.Fatalf("Failed to initialize cache: %v", err)
		}
		defer rc.Close()
		geoCache = rc
	}

	// Initialize layers
	var notifier service.Notifier
	if cfg.EmailEnabled() {
		notifier = email.NewSender(cfg, logger)
	}
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, logger, cfg, geocode.NewClient(cfg, geoCache, logger), notifier)
	h := handler.NewHandler(svc, cfg, logger)

	// Setup router
	r := mux.NewRouter()
	h.Routes(r)

	// Daily alert run
	sched, err := scheduler.New(cfg.CronSchedule, cfg.Location, func(ctx context.Context) error {
		_, err := svc.RunAlerts(ctx)
		return err
	}, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize scheduler: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	logger.Info("Server stopped")
}
