package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"ENV", "LOG_LEVEL", "PORT", "DATABASE_URL", "CATALOG_PATH", "ORDERS_DIR", "ORDERS_PATTERN",
	"ORDER_PARTITION_URLS", "ORDER_BATCHES", "ROBOT_START_X", "ROBOT_START_Y", "MAX_PICKUPS", "ROUTE_CACHE_SIZE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("CATALOG_PATH", "data/products.yaml")
	t.Setenv("ORDERS_DIR", "data/orders")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "local", cfg.Env)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 9, cfg.MaxPickups)
	require.Equal(t, 256, cfg.RouteCacheSize)
	require.Equal(t, "orders_*.yaml", cfg.OrdersPattern)
	require.Zero(t, cfg.RobotStart)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("CATALOG_PATH", "products.yaml")
	t.Setenv("DATABASE_URL", "postgres://localhost/pickups")
	t.Setenv("ORDER_BATCHES", " 20201201, ,20201202 ")
	t.Setenv("ORDER_PARTITION_URLS", "http://archive/a.yaml")
	t.Setenv("PORT", "9090")
	t.Setenv("ROBOT_START_X", "1.5")
	t.Setenv("ROBOT_START_Y", "-2")
	t.Setenv("MAX_PICKUPS", "10")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, []string{"20201201", "20201202"}, cfg.OrderBatches)
	require.Equal(t, []string{"http://archive/a.yaml"}, cfg.PartitionURLs)
	require.Equal(t, 1.5, cfg.RobotStart.X)
	require.Equal(t, -2.0, cfg.RobotStart.Y)
	require.Equal(t, 10, cfg.MaxPickups)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "no catalog",
			env:  map[string]string{"ORDERS_DIR": "orders"},
		},
		{
			name: "no partitions",
			env:  map[string]string{"CATALOG_PATH": "products.yaml"},
		},
		{
			name: "batches without database",
			env:  map[string]string{"CATALOG_PATH": "products.yaml", "ORDER_BATCHES": "a"},
		},
		{
			name: "bad port",
			env:  map[string]string{"CATALOG_PATH": "products.yaml", "ORDERS_DIR": "orders", "PORT": "http"},
		},
		{
			name: "negative pickups",
			env:  map[string]string{"CATALOG_PATH": "products.yaml", "ORDERS_DIR": "orders", "MAX_PICKUPS": "-1"},
		},
		{
			name: "unlimited pickups",
			env:  map[string]string{"CATALOG_PATH": "products.yaml", "ORDERS_DIR": "orders", "MAX_PICKUPS": "0"},
		},
		{
			name: "pickups above search ceiling",
			env:  map[string]string{"CATALOG_PATH": "products.yaml", "ORDERS_DIR": "orders", "MAX_PICKUPS": "11"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
		})
	}
}
