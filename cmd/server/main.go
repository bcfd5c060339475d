package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	api "bilio-backend/internal/api/http"
	"bilio-backend/internal/auth"
	"bilio-backend/internal/config"
	"bilio-backend/internal/logger"
	"bilio-backend/internal/repository/postgres"
	"bilio-backend/internal/service"
	"bilio-backend/internal/vehicledata"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load .env for local development; absence is fine
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Bilio Backend Server...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Authenticator
	var authenticator auth.Authenticator
	switch cfg.Auth.Mode {
	case "firebase":
		authenticator, err = auth.NewFirebaseAuthenticator(context.Background(), cfg.Auth.CredentialsFile)
		if err != nil {
			log.Fatalf("Failed to initialize firebase auth: %v", err)
		}
		logger.Info("Using firebase session verification")
	default:
		authenticator = auth.NewTokenAuthenticator(cfg.Auth.JWTSecret)
		logger.Info("Using local jwt session verification")
	}

	// Initialize Redis rate limiter (optional)
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warn("Redis unavailable, rate limiting disabled", "error", err)
			redisClient = nil
		}
	}

	// Initialize Services
	vehicleClient := vehicledata.NewClient(
		cfg.Vehicle.BaseURL,
		cfg.Vehicle.APIKey,
		time.Duration(cfg.Vehicle.TimeoutSeconds)*time.Second,
	)

	var emailService service.EmailService
	if cfg.Email.Enabled {
		emailService = service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	}

	creditService := service.NewCreditService(
		store.ProfileRepository,
		store.LedgerRepository,
		store.PackageRepository,
		cfg.Credits.DemoTopupEnabled,
	)
	reportService := service.NewReportService(store.ReportRepository, store.LedgerRepository)
	vehicleService := service.NewVehicleService(vehicleClient)
	paymentService := service.NewPaymentService(
		service.PaymentConfig{
			SecretKey:     cfg.Stripe.SecretKey,
			WebhookSecret: cfg.Stripe.WebhookSecret,
			SuccessURL:    cfg.Stripe.SuccessURL,
			CancelURL:     cfg.Stripe.CancelURL,
		},
		store.PackageRepository,
		store.PurchaseRepository,
		store.ProfileRepository,
		store.LedgerRepository,
		emailService,
	)

	// Initialize HTTP API
	middleware := api.NewMiddleware(authenticator, cfg.Auth.SessionCookieName, redisClient)
	router := api.NewRouter(middleware, api.Handlers{
		Credit:  api.NewCreditHandler(creditService),
		Report:  api.NewReportHandler(reportService),
		Vehicle: api.NewVehicleHandler(vehicleService),
		Payment: api.NewPaymentHandler(paymentService),
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
