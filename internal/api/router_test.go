package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"pickup-route-service/internal/adapters/cache"
	"pickup-route-service/internal/adapters/catalog"
	"pickup-route-service/internal/adapters/orders"
	"pickup-route-service/internal/api/dto"
	"pickup-route-service/internal/domain"
	"pickup-route-service/internal/ports"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const testProducts = `
- id: 1
  product: chair
  parts:
    - part: seat
      cx: 1
      cy: 0
    - part: leg
      cx: 2
      cy: 0
    - part: leg
      cx: 2
      cy: 0
`

func newTestRouter(t *testing.T, maxPickups int) (http.Handler, *observer.ObservedLogs) {
	t.Helper()

	c, err := catalog.ParseYAML(strings.NewReader(testProducts))
	require.NoError(t, err)

	routes, err := cache.NewLRURouteCache(16)
	require.NoError(t, err)

	core, logs := observer.New(zap.InfoLevel)

	deps := RouterDeps{
		Partitions: []ports.OrderPartition{
			&orders.MemoryPartition{PartitionName: "orders_20240101.yaml", Orders: []domain.Order{
				{OrderID: 1, DeliveryPoint: domain.Point{X: 5, Y: 0}, ProductIDs: []int64{1}},
			}},
			&orders.MemoryPartition{PartitionName: "orders_20240102.yaml", Orders: []domain.Order{
				{OrderID: 2, DeliveryPoint: domain.Point{X: 0, Y: 0}, ProductIDs: []int64{42}},
			}},
			&orders.FailingPartition{PartitionName: "orders_20240103.yaml", Err: errors.New("disk gone")},
		},
		Catalog: c,
		Cache:   routes,
		Robot:   domain.NewRobot(1, domain.Point{X: 0, Y: 0}, maxPickups),
		Logger:  zap.New(core),
	}
	return NewRouter(deps), logs
}

func doRequest(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h, logs := newTestRouter(t, 9)

	rec := doRequest(h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(http.StatusOK), entries[0].ContextMap()["status"])
}

func TestHealthWrongMethod(t *testing.T) {
	h, _ := newTestRouter(t, 9)

	rec := doRequest(h, http.MethodPost, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestRouter(t, 9)

	rec := doRequest(h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLocateOrder(t *testing.T) {
	h, _ := newTestRouter(t, 9)

	rec := doRequest(h, http.MethodGet, "/orders/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.LocateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Found)
	assert.Equal(t, "orders_20240101.yaml", res.Partition)
	require.NotNil(t, res.DeliveryPoint)
	assert.Equal(t, dto.Point{X: 5, Y: 0}, *res.DeliveryPoint)
	assert.Equal(t, []int64{1}, res.ProductIDs)
	require.Len(t, res.Unavailable, 1)
	assert.Equal(t, "orders_20240103.yaml", res.Unavailable[0].Partition)
}

func TestLocateOrderNotFound(t *testing.T) {
	h, _ := newTestRouter(t, 9)

	rec := doRequest(h, http.MethodGet, "/orders/77", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var res dto.LocateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.False(t, res.Found)
	assert.Nil(t, res.DeliveryPoint)
	assert.Empty(t, res.ProductIDs)
}

func TestLocateOrderBadID(t *testing.T) {
	h, _ := newTestRouter(t, 9)

	rec := doRequest(h, http.MethodGet, "/orders/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlanOrder(t *testing.T) {
	h, _ := newTestRouter(t, 9)

	rec := doRequest(h, http.MethodGet, "/orders/1/plan", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, uint64(1), res.OrderID)
	require.Len(t, res.Stops, 2)
	assert.Equal(t, "seat", res.Stops[0].PartName)
	assert.Equal(t, "leg", res.Stops[1].PartName)
	assert.Equal(t, 2, res.Stops[1].Quantity)
	assert.InDelta(t, 5.0, res.TotalDistance, 1e-9)
	assert.False(t, res.Cached)

	rec = doRequest(h, http.MethodGet, "/orders/1/plan", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Cached)
}

func TestPlanOrderStartOverride(t *testing.T) {
	h, _ := newTestRouter(t, 9)

	rec := doRequest(h, http.MethodGet, "/orders/1/plan?start_x=5&start_y=0", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, dto.Point{X: 5, Y: 0}, res.Start)
	assert.InDelta(t, 8.0, res.TotalDistance, 1e-9)
}

func TestPlanOrderErrors(t *testing.T) {
	tests := []struct {
		name       string
		maxPickups int
		target     string
		wantStatus int
	}{
		{name: "unknown order", maxPickups: 9, target: "/orders/77/plan", wantStatus: http.StatusNotFound},
		{name: "unknown product", maxPickups: 9, target: "/orders/2/plan", wantStatus: http.StatusUnprocessableEntity},
		{name: "too many pickups", maxPickups: 1, target: "/orders/1/plan", wantStatus: http.StatusUnprocessableEntity},
		{name: "half a start point", maxPickups: 9, target: "/orders/1/plan?start_x=1", wantStatus: http.StatusBadRequest},
		{name: "bad start point", maxPickups: 9, target: "/orders/1/plan?start_x=a&start_y=1", wantStatus: http.StatusBadRequest},
		{name: "bad order id", maxPickups: 9, target: "/orders/-1/plan", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestRouter(t, tt.maxPickups)
			rec := doRequest(h, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestSolveRoute(t *testing.T) {
	h, _ := newTestRouter(t, 9)

	body := `{"start":{"x":0,"y":0},"points":[{"x":1,"y":0},{"x":5,"y":0},{"x":2,"y":0}],"end":{"x":10,"y":0}}`
	rec := doRequest(h, http.MethodPost, "/routes", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, []int{0, 2, 1}, res.Order)
	assert.InDelta(t, 10.0, res.Length, 1e-9)
	assert.False(t, res.Degenerate)
}

func TestSolveRouteNoPoints(t *testing.T) {
	h, _ := newTestRouter(t, 9)

	rec := doRequest(h, http.MethodPost, "/routes", `{"start":{"x":0,"y":0},"end":{"x":3,"y":4}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"order":[],"length":5,"degenerate":true}`, rec.Body.String())
}

func TestSolveRouteRejects(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "invalid json", body: `{"start":`, wantStatus: http.StatusBadRequest},
		{name: "unknown field", body: `{"start":{"x":0,"y":0},"end":{"x":0,"y":0},"via":[]}`, wantStatus: http.StatusBadRequest},
		{name: "two objects", body: `{"start":{"x":0,"y":0},"end":{"x":0,"y":0}}{}`, wantStatus: http.StatusBadRequest},
		{name: "missing end", body: `{"start":{"x":0,"y":0}}`, wantStatus: http.StatusBadRequest},
		{
			name:       "too many points",
			body:       `{"start":{"x":0,"y":0},"points":[{"x":1,"y":1},{"x":2,"y":2},{"x":3,"y":3}],"end":{"x":0,"y":0}}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	h, _ := newTestRouter(t, 2)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(h, http.MethodPost, "/routes", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestSolveRouteCeilingWithoutRobotCap(t *testing.T) {
	h, _ := newTestRouter(t, 0)

	points := make([]string, 0, domain.MaxRoutePoints+1)
	for i := 0; i <= domain.MaxRoutePoints; i++ {
		points = append(points, fmt.Sprintf(`{"x":%d,"y":%d}`, i, i))
	}
	body := `{"start":{"x":0,"y":0},"points":[` + strings.Join(points, ",") + `],"end":{"x":0,"y":0}}`

	rec := doRequest(h, http.MethodPost, "/routes", body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
}

func TestBoundedRobot(t *testing.T) {
	tests := []struct {
		name       string
		maxPickups int
		want       int
	}{
		{name: "unlimited", maxPickups: 0, want: domain.MaxRoutePoints},
		{name: "above ceiling", maxPickups: domain.MaxRoutePoints + 5, want: domain.MaxRoutePoints},
		{name: "within ceiling", maxPickups: 4, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			robot := domain.NewRobot(1, domain.Point{}, tt.maxPickups)
			got := boundedRobot(robot)
			assert.Equal(t, tt.want, got.MaxPickups)
			assert.Equal(t, tt.maxPickups, robot.MaxPickups, "caller's robot is not modified")
		})
	}

	assert.Nil(t, boundedRobot(nil))
}
