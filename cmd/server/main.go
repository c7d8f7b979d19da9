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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/huellitas-app/service-adoption/internal/application"
	"github.com/huellitas-app/service-adoption/internal/config"
	adoptionEvents "github.com/huellitas-app/service-adoption/internal/events"
	"github.com/huellitas-app/service-adoption/internal/handler"
	"github.com/huellitas-app/service-adoption/internal/platform/auth"
	"github.com/huellitas-app/service-adoption/internal/platform/database"
	"github.com/huellitas-app/service-adoption/internal/platform/health"
	"github.com/huellitas-app/service-adoption/internal/platform/kafka"
	"github.com/huellitas-app/service-adoption/internal/platform/logger"
	"github.com/huellitas-app/service-adoption/internal/platform/middleware"
	"github.com/huellitas-app/service-adoption/internal/platform/response"
	"github.com/huellitas-app/service-adoption/internal/repository"
	"github.com/huellitas-app/service-adoption/migrations"
)

const serviceName = "service-adoption"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("db_driver", cfg.DBConfig.Driver),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	// Run database migrations
	if cfg.IsDevelopment() || cfg.DBConfig.Driver == "sqlite" {
		if err := db.AutoMigrate(repository.Models()...); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (auto-migrate)")
	} else {
		if err := database.RunMigrations(db, migrations.FS, log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	response.ExposeInternalErrors(cfg.IsDevelopment())

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, cfg.JWTConfig.TTL)

	// Initialize Kafka producer
	publisher := kafka.NewPublisher(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = publisher.Close() }()

	// Initialize repositories
	userRepo := repository.NewGormUserRepository(db)
	petRepo := repository.NewGormPetRepository(db)
	favoriteRepo := repository.NewGormFavoriteRepository(db)
	reportRepo := repository.NewGormReportRepository(db)

	// Initialize application services
	userService := application.NewUserService(userRepo, jwtManager, log)
	petService := application.NewPetService(petRepo, userRepo, publisher, log)
	favoriteService := application.NewFavoriteService(favoriteRepo, petService, log)
	reportService := application.NewReportService(reportRepo, publisher, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start the moderation consumer when a broker is configured
	if len(cfg.KafkaConfig.Brokers) > 0 {
		groupID := cfg.KafkaConfig.GroupPrefix + serviceName
		moderationConsumer := adoptionEvents.NewModerationEventConsumer(
			cfg.KafkaConfig.Brokers,
			groupID,
			reportService,
			log,
		)
		defer func() { _ = moderationConsumer.Close() }()

		go func() {
			log.Info("starting moderation event consumer")
			if err := moderationConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("moderation event consumer error", zap.Error(err))
			}
		}()
	} else {
		log.Warn("no kafka brokers configured, events are not published or consumed")
	}

	// Setup Gin router
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := handler.NewRouter(handler.RouterConfig{
		Logger:      log,
		CORSOrigins: cfg.CORSOrigins,
		Auth:        middleware.AuthMiddleware(jwtManager, userService),
		Health:      health.NewHandler(db, serviceName),
		Handlers: []handler.RouteRegistrar{
			handler.NewUserHandler(userService),
			handler.NewPetHandler(petService),
			handler.NewFavoriteHandler(favoriteService),
			handler.NewReportHandler(reportService),
		},
	})
	if err != nil {
		log.Fatal("failed to build router", zap.Error(err))
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down " + serviceName + "...")

	// Cancel the consumer context
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info(serviceName + " stopped")
}
