package orders

import (
	"context"
	"net/http"
	"net/http/httptest"
	"pickup-route-service/internal/domain"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPPartitionScan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(sampleOrders))
	}))
	defer srv.Close()

	p, err := NewHTTPPartition(srv.URL+"/orders_20240101.yaml", srv.Client())
	require.NoError(t, err)

	var ids []uint64
	err = p.Scan(context.Background(), func(o domain.Order) bool {
		ids = append(ids, o.OrderID)
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, ids)
	assert.Contains(t, p.Name(), "/orders_20240101.yaml")
}

func TestHTTPPartitionStatusErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "gone fishing", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p, err := NewHTTPPartition(srv.URL, srv.Client())
	require.NoError(t, err)

	err = p.Scan(context.Background(), func(domain.Order) bool { return true })
	require.Error(t, err)

	var statusErr *httpStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
	assert.Equal(t, "gone fishing", statusErr.Body)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNewHTTPPartitionRejectsScheme(t *testing.T) {
	_, err := NewHTTPPartition("ftp://example.com/orders.yaml", nil)
	assert.Error(t, err)
}
