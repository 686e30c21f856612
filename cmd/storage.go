package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-ParkingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	spaceRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/space"
	userServiceClient "github.com/m04kA/SMC-ParkingService/internal/integrations/userservice"
	bookingsService "github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	spacesService "github.com/m04kA/SMC-ParkingService/internal/service/spaces"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
)

// txManager объединяет уровни изоляции, нужные сервисам
type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage набор хранилищ выбранного драйвера
type storage struct {
	bookings  bookingsService.BookingRepository
	spaces    spacesService.SpaceRepository
	users     bookingsService.UserProvider
	txManager txManager
	close     func()
}

// openStorage поднимает хранилище по storage.driver.
// observer получает метрики запросов к Postgres и может быть nil.
func openStorage(cfg *config.Config, log *logger.Logger, observer dbmetrics.Observer, stop <-chan struct{}) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		store, err := memory.NewSeededStore(cfg.Memory)
		if err != nil {
			return nil, err
		}
		log.Info("Using in-memory storage (spaces=%d, users=%d)", cfg.Memory.Spaces, len(cfg.Memory.Users))
		return &storage{
			bookings:  store.Bookings(),
			spaces:    store.Spaces(),
			users:     store.Users(),
			txManager: store.TxManager(),
			close:     func() {},
		}, nil

	case config.DriverPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}

		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			db.Close()
			return nil, fmt.Errorf("ping database: %w", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		var wrappedDB *dbmetrics.DB
		if observer != nil {
			wrappedDB = dbmetrics.WrapWithDefault(db, observer, stop)
			log.Info("Database metrics collection started")
		} else {
			wrappedDB = dbmetrics.Wrap(db, nil)
		}

		userClient := userServiceClient.NewClient(
			cfg.UserService.URL,
			time.Duration(cfg.UserService.Timeout)*time.Second,
			log,
		)
		log.Info("UserService client initialized (url=%s, timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)

		return &storage{
			bookings:  bookingRepo.NewRepository(wrappedDB),
			spaces:    spaceRepo.NewRepository(wrappedDB),
			users:     userClient,
			txManager: txmanager.NewTransactionManager(wrappedDB),
			close: func() {
				if err := wrappedDB.Close(); err != nil {
					log.Error("Failed to close database: %v", err)
				}
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
