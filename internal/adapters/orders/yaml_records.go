package orders

import (
	"context"
	"errors"
	"fmt"
	"io"
	"pickup-route-service/internal/domain"

	"gopkg.in/yaml.v3"
)

// One entry of an orders_YYYYMMDD.yaml document.
type orderRecord struct {
	Order    uint64  `yaml:"order"`
	CX       float64 `yaml:"cx"`
	CY       float64 `yaml:"cy"`
	Products []int64 `yaml:"products"`
}

func (r orderRecord) toDomain() domain.Order {
	return domain.Order{
		OrderID:       r.Order,
		DeliveryPoint: domain.Point{X: r.CX, Y: r.CY},
		ProductIDs:    r.Products,
	}
}

// decodeOrders streams the records of a YAML order document to visit.
// The document is parsed once; records are decoded one at a time so a scan
// can stop early without decoding the rest.
func decodeOrders(ctx context.Context, r io.Reader, visit func(domain.Order) bool) error {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode orders: parse yaml: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return fmt.Errorf("decode orders: line %d: expected a sequence of orders", root.Line)
	}

	for i, item := range root.Content {
		if err := ctx.Err(); err != nil {
			return err
		}

		var rec orderRecord
		if err := item.Decode(&rec); err != nil {
			return fmt.Errorf("decode orders: record #%d (line %d): %w", i+1, item.Line, err)
		}
		if !visit(rec.toDomain()) {
			return nil
		}
	}

	return nil
}

// EncodeOrders writes orders as a YAML order document.
func EncodeOrders(w io.Writer, orders []domain.Order) error {
	recs := make([]orderRecord, 0, len(orders))
	for _, o := range orders {
		recs = append(recs, orderRecord{
			Order:    o.OrderID,
			CX:       o.DeliveryPoint.X,
			CY:       o.DeliveryPoint.Y,
			Products: o.ProductIDs,
		})
	}

	enc := yaml.NewEncoder(w)
	if err := enc.Encode(recs); err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode orders: close: %w", err)
	}
	return nil
}

// ReadOrders decodes every record of a YAML order document.
func ReadOrders(ctx context.Context, r io.Reader) ([]domain.Order, error) {
	var out []domain.Order
	err := decodeOrders(ctx, r, func(o domain.Order) bool {
		out = append(out, o)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
