package orders

import (
	"context"
	"os"
	"path/filepath"
	"pickup-route-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDiscoverYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "orders_20240103.yaml", sampleOrders)
	writeFile(t, dir, "orders_20240101.yaml", sampleOrders)
	writeFile(t, dir, "products.yaml", "[]")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "orders_dir.yaml"), 0o755))

	parts, err := DiscoverYAML(dir, "")
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Equal(t, "orders_20240101.yaml", parts[0].Name())
	assert.Equal(t, "orders_20240103.yaml", parts[1].Name())
}

func TestDiscoverYAMLEmptyDir(t *testing.T) {
	parts, err := DiscoverYAML(t.TempDir(), "")
	require.NoError(t, err)
	assert.Empty(t, parts)
}

func TestYAMLFilePartitionScan(t *testing.T) {
	path := writeFile(t, t.TempDir(), "orders_20240101.yaml", sampleOrders)
	p := NewYAMLFilePartition(path)

	var ids []uint64
	err := p.Scan(context.Background(), func(o domain.Order) bool {
		ids = append(ids, o.OrderID)
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, ids)
}

func TestYAMLFilePartitionMissingFile(t *testing.T) {
	p := NewYAMLFilePartition(filepath.Join(t.TempDir(), "orders_missing.yaml"))

	err := p.Scan(context.Background(), func(domain.Order) bool { return true })
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBatchName(t *testing.T) {
	assert.Equal(t, "20240101", BatchName("/data/orders_20240101.yaml"))
	assert.Equal(t, "archive", BatchName("archive.yml"))
}
