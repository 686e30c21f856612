package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	UserService UserServiceConfig `toml:"user_service"`
	Storage     StorageConfig     `toml:"storage"`
	Booking     BookingConfig     `toml:"booking"`
	CORS        CORSConfig        `toml:"cors"`
	Jobs        JobsConfig        `toml:"jobs"`
	Memory      MemoryConfig      `toml:"memory"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type UserServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

type StorageConfig struct {
	Driver string `toml:"driver"`
}

type BookingConfig struct {
	Timezone        string `toml:"timezone"`
	FillConcurrency int    `toml:"fill_concurrency"`
}

// Location часовой пояс для ключевых слов today/now/tomorrow.
// Пустое значение означает локальный пояс процесса.
func (c BookingConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

type JobsConfig struct {
	OccupancyEnabled  bool   `toml:"occupancy_enabled"`
	OccupancySchedule string `toml:"occupancy_schedule"`
}

// MemoryConfig начальные данные для драйвера memory
type MemoryConfig struct {
	Spaces int          `toml:"spaces"`
	Users  []MemoryUser `toml:"users"`
}

type MemoryUser struct {
	ID    int64  `toml:"id"`
	Name  string `toml:"name"`
	Email string `toml:"email"`
	Type  string `toml:"type"`
}

// Load читает TOML файл, подгружает .env (если есть) и применяет переопределения из окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrReadConfig, err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:        LogsConfig{Level: "info"},
		Metrics:     MetricsConfig{Path: "/metrics", ServiceName: "parking-service"},
		UserService: UserServiceConfig{Timeout: 5},
		Storage:     StorageConfig{Driver: DriverPostgres},
		Booking:     BookingConfig{FillConcurrency: 4},
		Jobs:        JobsConfig{OccupancySchedule: "@every 5m"},
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: DB_PORT=%q", ErrInvalidConfig, v)
		}
		c.Database.Port = port
	}
	if v := os.Getenv("USER_SERVICE_URL"); v != "" {
		c.UserService.URL = v
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	return nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Database.Port <= 0 || c.Database.Port > 65535 {
			return fmt.Errorf("%w: database.port=%d", ErrInvalidConfig, c.Database.Port)
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
		}
		if c.UserService.URL == "" {
			return fmt.Errorf("%w: user_service.url is required", ErrInvalidConfig)
		}
	case DriverMemory:
		if c.Memory.Spaces < 0 {
			return fmt.Errorf("%w: memory.spaces=%d", ErrInvalidConfig, c.Memory.Spaces)
		}
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if c.Booking.FillConcurrency <= 0 {
		return fmt.Errorf("%w: booking.fill_concurrency must be positive", ErrInvalidConfig)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}
	if c.Jobs.OccupancyEnabled && c.Jobs.OccupancySchedule == "" {
		return fmt.Errorf("%w: jobs.occupancy_schedule is required", ErrInvalidConfig)
	}

	return nil
}
