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

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	createBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_booking"
	createSpaceHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_space"
	deleteBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/delete_booking"
	deleteSpaceHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/delete_space"
	fillBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/fill_bookings"
	getBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_booking"
	getBookingsByDatesHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_bookings_by_dates"
	getBookingsByIDsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_bookings_by_ids"
	getEmptySpaceCountHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_empty_space_count"
	getEmptySpacesHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_empty_spaces"
	getFullDaysHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_full_days"
	getSpaceHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_space"
	getSpaceFreeHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_space_free"
	getSpacesByIDsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_spaces_by_ids"
	getUserBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_user_bookings"
	listBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/list_bookings"
	listSpacesHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/list_spaces"
	removeBookingDayHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/remove_booking_day"
	removeUserBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/remove_user_bookings"
	updateBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/update_booking"
	updateSpaceHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/update_space"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/clock"
	"github.com/m04kA/SMC-ParkingService/internal/config"
	"github.com/m04kA/SMC-ParkingService/internal/jobs/occupancy"
	availabilityService "github.com/m04kA/SMC-ParkingService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	spacesService "github.com/m04kA/SMC-ParkingService/internal/service/spaces"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ParkingService...")
	log.Info("Configuration loaded from %s (storage=%s)", configPath, cfg.Storage.Driver)

	// Инициализируем метрики (если включены).
	// Интерфейсы остаются nil при выключенных метриках.
	var (
		metricsCollector *metrics.Metrics
		dbObserver       dbmetrics.Observer
		bookingMetrics   bookingsService.MetricsRecorder
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbObserver = metricsCollector
		bookingMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище: Postgres или in-memory
	store, err := openStorage(cfg, log, dbObserver, stopMetricsCh)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.close()

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}
	resolver := clock.NewResolver(clock.RealClock{}, location)

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(store.bookings, store.spaces, resolver, log)
	bookingSvc := bookingsService.NewService(
		store.bookings,
		store.spaces,
		store.users,
		availabilitySvc,
		store.txManager,
		bookingMetrics,
		cfg.Booking.FillConcurrency,
		log,
	)
	spaceSvc := spacesService.NewService(store.spaces, store.users, store.txManager, log)

	// Фоновый пересчет свободных мест
	var scheduler *cron.Cron
	if cfg.Jobs.OccupancyEnabled && metricsCollector != nil {
		job := occupancy.NewJob(availabilitySvc, metricsCollector, resolver, log)
		scheduler, err = occupancy.Schedule(cfg.Jobs.OccupancySchedule, job)
		if err != nil {
			log.Fatal("Failed to schedule occupancy job: %v", err)
		}
		go job.Run()
		log.Info("Occupancy job scheduled (%s)", cfg.Jobs.OccupancySchedule)
	}

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(bookingSvc, resolver, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, resolver, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBookingsByDates := getBookingsByDatesHandler.NewHandler(bookingSvc, resolver, log)
	getBookingsByIDs := getBookingsByIDsHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, resolver, log)
	removeBookingDay := removeBookingDayHandler.NewHandler(bookingSvc, resolver, log)
	fillBookings := fillBookingsHandler.NewHandler(bookingSvc, resolver, log)
	removeUserBookings := removeUserBookingsHandler.NewHandler(bookingSvc, resolver, log)

	getEmptySpaces := getEmptySpacesHandler.NewHandler(availabilitySvc, resolver, log)
	getEmptySpaceCount := getEmptySpaceCountHandler.NewHandler(availabilitySvc, resolver, log)
	getFullDays := getFullDaysHandler.NewHandler(availabilitySvc, resolver, log)
	getSpaceFree := getSpaceFreeHandler.NewHandler(availabilitySvc, resolver, log)

	listSpaces := listSpacesHandler.NewHandler(spaceSvc, log)
	createSpace := createSpaceHandler.NewHandler(spaceSvc, log)
	getSpace := getSpaceHandler.NewHandler(spaceSvc, log)
	getSpacesByIDs := getSpacesByIDsHandler.NewHandler(spaceSvc, log)
	updateSpace := updateSpaceHandler.NewHandler(spaceSvc, log)
	deleteSpace := deleteSpaceHandler.NewHandler(spaceSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (чтение, без X-User-ID)
	// ============================================================

	// --- Бронирования ---
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/dates", getBookingsByDates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/ids", getBookingsByIDs.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/users/{userId:[0-9]+}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Свободные места ---
	api.HandleFunc("/spaces/empty/date/{date}", getEmptySpaces.HandleDay).Methods(http.MethodGet)
	api.HandleFunc("/spaces/empty/range", getEmptySpaces.HandleRange).Methods(http.MethodGet)
	api.HandleFunc("/spaces/empty/amount/{date}", getEmptySpaceCount.Handle).Methods(http.MethodGet)
	api.HandleFunc("/spaces/full-days", getFullDays.Handle).Methods(http.MethodGet)
	api.HandleFunc("/spaces/{spaceId:[0-9]+}/free", getSpaceFree.Handle).Methods(http.MethodGet)

	// --- Инвентарь мест ---
	api.HandleFunc("/spaces", listSpaces.Handle).Methods(http.MethodGet)
	api.HandleFunc("/spaces/ids", getSpacesByIDs.Handle).Methods(http.MethodPost)
	api.HandleFunc("/spaces/{spaceId:[0-9]+}", getSpace.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", updateBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/days/{date}", removeBookingDay.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/users/{userId:[0-9]+}/bookings/fill", fillBookings.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId:[0-9]+}/bookings", removeUserBookings.Handle).Methods(http.MethodDelete)

	// --- Управление местами (для менеджеров) ---
	protected.HandleFunc("/spaces", createSpace.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/spaces/{spaceId:[0-9]+}", updateSpace.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/spaces/{spaceId:[0-9]+}", deleteSpace.Handle).Methods(http.MethodDelete)

	// CORS и восстановление после паники
	var handler http.Handler = r
	handler = gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(cfg.CORS.AllowedOrigins),
		gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", middleware.UserIDHeader, middleware.RequestIDHeader}),
		gorillaHandlers.ExposedHeaders([]string{middleware.RequestIDHeader}),
	)(handler)
	handler = gorillaHandlers.RecoveryHandler(
		gorillaHandlers.RecoveryLogger(recoveryLogger{log: log}),
	)(handler)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if scheduler != nil {
		<-scheduler.Stop().Done()
		log.Info("Occupancy job stopped")
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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

// recoveryLogger адаптер логгера для gorilla/handlers.RecoveryHandler
type recoveryLogger struct {
	log *logger.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Error("Recovered from panic: %s", fmt.Sprint(v...))
}
