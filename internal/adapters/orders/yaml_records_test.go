package orders

import (
	"bytes"
	"context"
	"pickup-route-service/internal/domain"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOrders = `
- order: 1
  cx: 12.5
  cy: 3
  products: [1, 2, 2]
- order: 2
  cx: 0
  cy: 0
  products: []
- order: 3
  cx: 7
  cy: 8
  products: [4]
`

func TestReadOrders(t *testing.T) {
	got, err := ReadOrders(context.Background(), strings.NewReader(sampleOrders))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, domain.Order{
		OrderID:       1,
		DeliveryPoint: domain.Point{X: 12.5, Y: 3},
		ProductIDs:    []int64{1, 2, 2},
	}, got[0])
	assert.Empty(t, got[1].ProductIDs)
	assert.Equal(t, uint64(3), got[2].OrderID)
}

func TestReadOrdersEmptyDocument(t *testing.T) {
	got, err := ReadOrders(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecodeOrdersStopsEarly(t *testing.T) {
	var seen []uint64
	err := decodeOrders(context.Background(), strings.NewReader(sampleOrders), func(o domain.Order) bool {
		seen = append(seen, o.OrderID)
		return o.OrderID != 2
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, seen)
}

func TestDecodeOrdersRejectsMapping(t *testing.T) {
	err := decodeOrders(context.Background(), strings.NewReader("order: 1\n"), func(domain.Order) bool { return true })
	assert.ErrorContains(t, err, "expected a sequence")
}

func TestDecodeOrdersBadRecord(t *testing.T) {
	doc := "- order: 1\n- order: nope\n"
	err := decodeOrders(context.Background(), strings.NewReader(doc), func(domain.Order) bool { return true })
	assert.ErrorContains(t, err, "record #2")
}

func TestDecodeOrdersHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := decodeOrders(ctx, strings.NewReader(sampleOrders), func(domain.Order) bool { return true })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEncodeOrdersRoundTrip(t *testing.T) {
	in := []domain.Order{
		{OrderID: 42, DeliveryPoint: domain.Point{X: 1.5, Y: 2}, ProductIDs: []int64{7, 8}},
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeOrders(&buf, in))

	out, err := ReadOrders(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
