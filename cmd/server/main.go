package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "rental-booking-backend/internal/api/http"
	"rental-booking-backend/internal/config"
	"rental-booking-backend/internal/logger"
	"rental-booking-backend/internal/repository/postgres"
	"rental-booking-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rental Booking Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
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

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email)
	ledgerSvc := service.NewLedgerService(store.Ledger)
	availabilitySvc := service.NewAvailabilityService(store.Items, store.Bookings)
	eligibilitySvc := service.NewEligibilityService(store.Bookings, store.Customers, cfg.Booking)
	itemSvc := service.NewItemService(store.Items, store.Suppliers)
	customerSvc := service.NewCustomerService(store.Customers, store.Bookings)
	exchangeSvc := service.NewExchangeService(store.Bookings)
	bookingSvc := service.NewBookingService(
		store,
		store.Bookings,
		store.Items,
		store.Customers,
		ledgerSvc,
		emailSvc,
		cfg.Booking,
	)

	// Set up HTTP server
	router := httpapi.NewRouter(
		bookingSvc,
		exchangeSvc,
		availabilitySvc,
		eligibilitySvc,
		itemSvc,
		customerSvc,
	)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
