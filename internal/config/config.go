package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"pickup-route-service/internal/domain"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the service configuration, read from the environment.
type Config struct {
	Env      string
	LogLevel string
	Port     int

	// Optional; enables the SQL catalog, SQL order batches and the shared
	// route cache.
	DatabaseURL string

	CatalogPath string

	// Order partitions. Every configured source contributes partitions.
	OrdersDir     string
	OrdersPattern string
	PartitionURLs []string
	OrderBatches  []string

	RobotStart     domain.Point
	MaxPickups     int
	RouteCacheSize int
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// GetInt returns the integer value of key, or fallback when unset.
func GetInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// GetFloat returns the float value of key, or fallback when unset.
func GetFloat(key string, fallback float64) (float64, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

// GetList splits a comma separated value, dropping empty items.
func GetList(key string) []string {
	var out []string
	for _, item := range strings.Split(Get(key, ""), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// LoadDotEnv loads .env into the environment if present.
// It reports whether a file was loaded.
func LoadDotEnv() (bool, error) {
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("load .env: %w", err)
	}
	return true, nil
}

// Load reads the configuration from the environment, applies defaults and
// validates it. Call LoadDotEnv first to pick up a .env file.
func Load() (Config, error) {
	cfg := Config{
		Env:           Get("ENV", "local"),
		LogLevel:      Get("LOG_LEVEL", ""),
		DatabaseURL:   Get("DATABASE_URL", ""),
		CatalogPath:   Get("CATALOG_PATH", ""),
		OrdersDir:     Get("ORDERS_DIR", ""),
		OrdersPattern: Get("ORDERS_PATTERN", "orders_*.yaml"),
		PartitionURLs: GetList("ORDER_PARTITION_URLS"),
		OrderBatches:  GetList("ORDER_BATCHES"),
	}

	var errs []error
	var err error

	if cfg.Port, err = GetInt("PORT", 8080); err != nil {
		errs = append(errs, err)
	}
	if cfg.MaxPickups, err = GetInt("MAX_PICKUPS", 9); err != nil {
		errs = append(errs, err)
	}
	if cfg.RouteCacheSize, err = GetInt("ROUTE_CACHE_SIZE", 256); err != nil {
		errs = append(errs, err)
	}
	if cfg.RobotStart.X, err = GetFloat("ROBOT_START_X", 0); err != nil {
		errs = append(errs, err)
	}
	if cfg.RobotStart.Y, err = GetFloat("ROBOT_START_Y", 0); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return Config{}, fmt.Errorf("load config: %w", errors.Join(errs...))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.MaxPickups < 1 || c.MaxPickups > domain.MaxRoutePoints {
		return fmt.Errorf("MAX_PICKUPS must be between 1 and %d, got %d", domain.MaxRoutePoints, c.MaxPickups)
	}
	if c.RouteCacheSize < 0 {
		return fmt.Errorf("ROUTE_CACHE_SIZE must not be negative, got %d", c.RouteCacheSize)
	}
	if !c.RobotStart.Valid() {
		return fmt.Errorf("ROBOT_START_X/ROBOT_START_Y: %w", domain.ErrInvalidPoint)
	}
	if c.CatalogPath == "" && c.DatabaseURL == "" {
		return errors.New("CATALOG_PATH or DATABASE_URL is required")
	}
	if c.OrdersDir == "" && len(c.PartitionURLs) == 0 && len(c.OrderBatches) == 0 {
		return errors.New("one of ORDERS_DIR, ORDER_PARTITION_URLS or ORDER_BATCHES is required")
	}
	if len(c.OrderBatches) > 0 && c.DatabaseURL == "" {
		return errors.New("ORDER_BATCHES requires DATABASE_URL")
	}
	return nil
}
