package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"pickup-route-service/internal/adapters/catalog"
	"pickup-route-service/internal/adapters/orders"
	"pickup-route-service/internal/adapters/repositories"
	"pickup-route-service/internal/config"
	"pickup-route-service/internal/domain"
	"pickup-route-service/internal/platform/db"
	"pickup-route-service/internal/platform/logger"
	"time"

	"go.uber.org/zap"
)

// dbtool initializes the postgres schema and seeds the catalog and order
// batches from YAML documents. With -export <batch> it instead writes one
// stored batch to stdout as an order document.
func main() {
	exportBatch := flag.String("export", "", "write the named order batch to stdout as YAML")
	flag.Parse()

	if _, err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	log, err := logger.New(config.Get("ENV", "local"), config.Get("LOG_LEVEL", ""))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer conn.Close()

	if *exportBatch != "" {
		if err := exportOrders(ctx, conn, *exportBatch); err != nil {
			log.Fatal("export failed", zap.String("batch", *exportBatch), zap.Error(err))
		}
		return
	}

	productsPath := config.Get("SEED_PRODUCTS_PATH", config.Get("CATALOG_PATH", "data/products.yaml"))
	ordersDir := config.Get("ORDERS_DIR", "data")
	ordersPattern := config.Get("ORDERS_PATTERN", "orders_*.yaml")

	if err := initAndSeed(ctx, conn, log, productsPath, ordersDir, ordersPattern); err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, log *zap.Logger, productsPath, ordersDir, ordersPattern string) error {
	log.Info("initializing database schema")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Info("schema ready")

	cat, err := catalog.LoadYAML(productsPath)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	if err := repositories.SeedCatalog(ctx, conn, cat.Parts(), cat.Products()); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Info("catalog seeded",
		zap.String("path", productsPath),
		zap.Int("products", len(cat.Products())),
		zap.Int("parts", len(cat.Parts())),
	)

	files, err := orders.DiscoverYAML(ordersDir, ordersPattern)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	for _, f := range files {
		in, err := os.Open(f.Path)
		if err != nil {
			return fmt.Errorf("init and seed: %w", err)
		}
		recs, err := orders.ReadOrders(ctx, in)
		in.Close()
		if err != nil {
			return fmt.Errorf("init and seed: %s: %w", f.Path, err)
		}

		batch := orders.BatchName(f.Path)
		if err := repositories.SeedOrders(ctx, conn, batch, recs); err != nil {
			return fmt.Errorf("init and seed: %w", err)
		}
		log.Info("order batch seeded", zap.String("batch", batch), zap.Int("orders", len(recs)))
	}

	return nil
}

func exportOrders(ctx context.Context, conn *sql.DB, batch string) error {
	var recs []domain.Order
	err := orders.NewSQLPartition(conn, batch).Scan(ctx, func(o domain.Order) bool {
		recs = append(recs, o)
		return true
	})
	if err != nil {
		return fmt.Errorf("export orders: %w", err)
	}
	return orders.EncodeOrders(os.Stdout, recs)
}
