package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"pickup-route-service/internal/adapters/cache"
	"pickup-route-service/internal/adapters/catalog"
	"pickup-route-service/internal/adapters/orders"
	"pickup-route-service/internal/config"
	"pickup-route-service/internal/domain"
	"pickup-route-service/internal/platform/db"
	"pickup-route-service/internal/ports"
	"time"

	"go.uber.org/zap"
)

// Components are the concrete adapters behind the service ports, built from
// configuration. Shared by the server and the planner CLI.
type Components struct {
	DB         *sql.DB
	Catalog    ports.Catalog
	Partitions []ports.OrderPartition
	Cache      ports.RouteCache
	Robot      *domain.Robot
}

// Build connects to the configured sources. The database is optional; when
// present it backs the catalog (unless CATALOG_PATH is set), the configured
// order batches and the shared tier of the route cache.
func Build(ctx context.Context, cfg config.Config, log *zap.Logger) (*Components, error) {
	c := &Components{
		Robot: domain.NewRobot(1, cfg.RobotStart, cfg.MaxPickups),
	}

	if cfg.DatabaseURL != "" {
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("build components: %w", err)
		}
		c.DB = conn
		log.Info("connected to database")
	}

	if err := c.buildCatalog(cfg, log); err != nil {
		c.Close()
		return nil, fmt.Errorf("build components: %w", err)
	}
	if err := c.buildPartitions(cfg, log); err != nil {
		c.Close()
		return nil, fmt.Errorf("build components: %w", err)
	}
	if err := c.buildCache(cfg, log); err != nil {
		c.Close()
		return nil, fmt.Errorf("build components: %w", err)
	}

	return c, nil
}

func (c *Components) buildCatalog(cfg config.Config, log *zap.Logger) error {
	if cfg.CatalogPath != "" {
		yc, err := catalog.LoadYAML(cfg.CatalogPath)
		if err != nil {
			return err
		}
		c.Catalog = yc
		log.Info("catalog loaded",
			zap.String("path", cfg.CatalogPath),
			zap.Int("products", len(yc.Products())),
			zap.Int("parts", len(yc.Parts())),
		)
		return nil
	}

	if c.DB == nil {
		return errors.New("catalog: no CATALOG_PATH and no database")
	}
	c.Catalog = catalog.NewSQLCatalog(c.DB)
	log.Info("using database catalog")
	return nil
}

func (c *Components) buildPartitions(cfg config.Config, log *zap.Logger) error {
	if cfg.OrdersDir != "" {
		files, err := orders.DiscoverYAML(cfg.OrdersDir, cfg.OrdersPattern)
		if err != nil {
			return err
		}
		for _, f := range files {
			c.Partitions = append(c.Partitions, f)
		}
	}

	client := &http.Client{Timeout: 10 * time.Second}
	for _, u := range cfg.PartitionURLs {
		p, err := orders.NewHTTPPartition(u, client)
		if err != nil {
			return err
		}
		c.Partitions = append(c.Partitions, p)
	}

	for _, batch := range cfg.OrderBatches {
		if c.DB == nil {
			return fmt.Errorf("order batch %q: no database", batch)
		}
		c.Partitions = append(c.Partitions, orders.NewSQLPartition(c.DB, batch))
	}

	names := make([]string, 0, len(c.Partitions))
	for _, p := range c.Partitions {
		names = append(names, p.Name())
	}
	log.Info("order partitions ready", zap.Strings("partitions", names))

	if len(c.Partitions) == 0 {
		log.Warn("no order partitions found, every lookup will miss")
	}
	return nil
}

func (c *Components) buildCache(cfg config.Config, log *zap.Logger) error {
	if cfg.RouteCacheSize == 0 {
		if c.DB != nil {
			c.Cache = cache.NewSQLRouteCache(c.DB)
		}
		return nil
	}

	near, err := cache.NewLRURouteCache(cfg.RouteCacheSize)
	if err != nil {
		return err
	}
	c.Cache = near

	if c.DB != nil {
		c.Cache = &cache.TieredRouteCache{Near: near, Far: cache.NewSQLRouteCache(c.DB)}
	}
	log.Info("route cache ready", zap.Int("size", cfg.RouteCacheSize), zap.Bool("shared", c.DB != nil))
	return nil
}

// Close releases the database connection, if any.
func (c *Components) Close() {
	if c.DB != nil {
		_ = c.DB.Close()
	}
}
