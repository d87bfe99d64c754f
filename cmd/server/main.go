package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcapi "ombrello-backend/internal/api/grpc"
	httpapi "ombrello-backend/internal/api/http"
	"ombrello-backend/internal/config"
	"ombrello-backend/internal/events"
	"ombrello-backend/internal/jobs"
	"ombrello-backend/internal/logger"
	"ombrello-backend/internal/repository/postgres"
	"ombrello-backend/internal/scheduler"
	"ombrello-backend/internal/security"
	"ombrello-backend/internal/service"
	"ombrello-backend/internal/weather"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/health"
)

const healthCheckInterval = 15 * time.Second

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, *configPath)
	stop()
	if err != nil {
		log.Printf("Server stopped with error: %v", err)
		os.Exit(1)
	}
}

// run blocks until ctx is done or a server fails. Startup and serve errors
// are returned so the deferred closes still run.
func run(ctx context.Context, configPath string) error {
	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Ombrello backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "http", cfg.GetServerAddress(), "grpc", cfg.GetGRPCAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Money is rendered as JSON numbers, matching the mobile clients.
	decimal.MarshalJSONWithoutQuotes = true

	// Initialize Database
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxOpenConns / 2)
	logger.Info("Database connection established")

	if cfg.Database.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			logger.Error("Failed to apply schema", "error", err)
			return fmt.Errorf("failed to apply schema: %w", err)
		}
		logger.Info("Database schema is up to date")
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Rental events
	var publisher events.Publisher = events.NewLogPublisher()
	if cfg.Kafka.Enabled {
		logger.Info("Publishing rental events to Kafka", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
		publisher = events.NewKafkaPublisher(events.KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			WriteTimeout: time.Duration(cfg.Kafka.WriteTimeoutSeconds) * time.Second,
		})
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("Failed to close event publisher", "error", err)
		}
	}()

	// Weather
	weatherCache := weather.NewCache(
		weather.NewOpenMeteo(cfg.Weather.BaseURL, cfg.WeatherTimeout()),
		cfg.WeatherCacheTTL(),
	)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		cfg.JWT.Issuer,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	// Initialize Services
	services := httpapi.Services{
		Rentals: service.NewRentalService(store, store.Repositories, publisher),
		Pricing: service.NewPricingService(weatherCache, service.PricingOptions{
			DefaultLat: cfg.Pricing.DefaultLat,
			DefaultLng: cfg.Pricing.DefaultLng,
			Location:   cfg.PricingLocation(),
			ValidFor:   time.Duration(cfg.Pricing.ValidMinutes) * time.Minute,
		}),
		Inventory: service.NewInventoryService(store, store.Repositories, cfg.QR.ShortlinkBase),
		Vendors:   service.NewVendorService(store.Repositories, cfg.Pricing.EarningsTimezone),
		Admin:     service.NewAdminService(store.Repositories),
	}

	// Scheduler
	jobRunner := jobs.NewJobRunner(store, weatherCache, cfg)
	cronScheduler, err := scheduler.NewScheduler(jobRunner, true)
	if err != nil {
		return fmt.Errorf("failed to set up scheduler: %w", err)
	}

	// HTTP server
	httpServer := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      httpapi.NewRouter(services, tokenManager, db),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	// gRPC health server
	healthServer := health.NewServer()
	grpcServer := grpcapi.NewServer(healthServer)
	lis, err := net.Listen("tcp", cfg.GetGRPCAddress())
	if err != nil {
		logger.Error("Failed to listen", "error", err, "address", cfg.GetGRPCAddress())
		return fmt.Errorf("failed to listen on %s: %w", cfg.GetGRPCAddress(), err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("gRPC server listening", "address", cfg.GetGRPCAddress())
		return grpcServer.Serve(lis)
	})

	g.Go(func() error {
		grpcapi.NewHealthChecker(healthServer, db).Run(gctx, healthCheckInterval)
		return nil
	})

	cronScheduler.Start()

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down...")

		cronScheduler.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownSeconds)*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown failed", "error", err)
		}
		grpcServer.GracefulStop()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", "error", err)
		return err
	}
	logger.Info("Server shutdown completed")
	return nil
}
