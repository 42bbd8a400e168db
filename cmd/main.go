package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createBookingHandler "github.com/soleraspa/booking-service/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/soleraspa/booking-service/internal/api/handlers/delete_booking"
	getAvailabilityHandler "github.com/soleraspa/booking-service/internal/api/handlers/get_availability"
	getBookingHandler "github.com/soleraspa/booking-service/internal/api/handlers/get_booking"
	listBookingsHandler "github.com/soleraspa/booking-service/internal/api/handlers/list_bookings"
	listPaymentsHandler "github.com/soleraspa/booking-service/internal/api/handlers/list_payments"
	listProvidersHandler "github.com/soleraspa/booking-service/internal/api/handlers/list_providers"
	listServicesHandler "github.com/soleraspa/booking-service/internal/api/handlers/list_services"
	payBalanceHandler "github.com/soleraspa/booking-service/internal/api/handlers/pay_balance"
	payDepositHandler "github.com/soleraspa/booking-service/internal/api/handlers/pay_deposit"
	"github.com/soleraspa/booking-service/internal/api/middleware"
	"github.com/soleraspa/booking-service/internal/config"
	bookingRepo "github.com/soleraspa/booking-service/internal/infra/storage/booking"
	reservationRepo "github.com/soleraspa/booking-service/internal/infra/storage/reservation"
	catalogServiceClient "github.com/soleraspa/booking-service/internal/integrations/catalogservice"
	"github.com/soleraspa/booking-service/internal/notify"
	bookingsService "github.com/soleraspa/booking-service/internal/service/bookings"
	commitBookingUC "github.com/soleraspa/booking-service/internal/usecase/commit_booking"
	getAvailabilityUC "github.com/soleraspa/booking-service/internal/usecase/get_availability"
	"github.com/soleraspa/booking-service/pkg/dbmetrics"
	"github.com/soleraspa/booking-service/pkg/logger"
	"github.com/soleraspa/booking-service/pkg/metrics"
	"github.com/soleraspa/booking-service/pkg/simpletxmanager"
	"github.com/soleraspa/booking-service/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting booking-service...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Catalog client initialized (url=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	var (
		bookingRepository     *bookingRepo.Repository
		reservationRepository *reservationRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	var notifier bookingsService.Notifier
	if cfg.Notifications.Enabled {
		notifier = notify.NewEmailNotifier(
			cfg.Notifications.APIKey,
			cfg.Notifications.FromEmail,
			cfg.Notifications.FromName,
			log,
		)
		log.Info("Email notifications enabled (from=%s)", cfg.Notifications.FromEmail)
	} else {
		notifier = notify.NewNoopNotifier(log)
		log.Info("Email notifications disabled")
	}

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		reservationRepository,
		txMgr,
		notifier,
		log,
	)

	commitBookingUseCase := commitBookingUC.New(
		bookingRepository,
		reservationRepository,
		catalogClient,
		txMgr,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.New(
		catalogClient,
		reservationRepository,
		&getAvailabilityUC.RealTimeProvider{},
		log,
	)

	createBooking := createBookingHandler.NewHandler(commitBookingUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	payDeposit := payDepositHandler.NewHandler(bookingSvc, log)
	payBalance := payBalanceHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	listPayments := listPaymentsHandler.NewHandler(bookingSvc, log)
	listServices := listServicesHandler.NewHandler(catalogClient, log)
	listProviders := listProvidersHandler.NewHandler(catalogClient, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes: the booking flow used by the storefront.
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers", listProviders.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/deposit", payDeposit.Handle).Methods(http.MethodPost)

	// Admin routes: require the X-Admin-Token header.
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Auth.AdminToken))
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}/balance", payBalance.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{id}", deleteBooking.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/payments", listPayments.Handle).Methods(http.MethodGet)

	corsHandler := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins([]string{"*"}),
		gorillahandlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions,
		}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "X-Admin-Token"}),
	)(r)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
