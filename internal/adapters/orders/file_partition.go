package orders

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"pickup-route-service/internal/domain"
	"slices"
	"strings"
)

// YAMLFilePartition is an order partition backed by one YAML file on disk.
type YAMLFilePartition struct {
	Path string
}

func NewYAMLFilePartition(path string) *YAMLFilePartition {
	return &YAMLFilePartition{Path: path}
}

func (p *YAMLFilePartition) Name() string {
	return filepath.Base(p.Path)
}

func (p *YAMLFilePartition) Scan(ctx context.Context, visit func(domain.Order) bool) error {
	f, err := os.Open(p.Path)
	if err != nil {
		return fmt.Errorf("scan %q: open: %w", p.Path, err)
	}
	defer f.Close()

	if err := decodeOrders(ctx, f, visit); err != nil {
		return fmt.Errorf("scan %q: %w", p.Path, err)
	}
	return nil
}

// DiscoverYAML returns one partition per file in dir matching pattern,
// sorted by file name.
func DiscoverYAML(dir string, pattern string) ([]*YAMLFilePartition, error) {
	if pattern == "" {
		pattern = "orders_*.yaml"
	}

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("discover order files in %q: %w", dir, err)
	}
	slices.Sort(matches)

	out := make([]*YAMLFilePartition, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			return nil, fmt.Errorf("discover order files: stat %q: %w", m, err)
		}
		if info.IsDir() {
			continue
		}
		out = append(out, NewYAMLFilePartition(m))
	}

	return out, nil
}

// BatchName derives the SQL batch name of an order file:
// orders_20240101.yaml becomes 20240101.
func BatchName(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.TrimPrefix(name, "orders_")
}
