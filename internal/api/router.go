package api

import (
	"net/http"
	"pickup-route-service/internal/api/handlers"
	"pickup-route-service/internal/domain"
	"pickup-route-service/internal/platform/metrics"
	"pickup-route-service/internal/ports"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Dependencies of the HTTP API. Cache may be nil.
type RouterDeps struct {
	Partitions []ports.OrderPartition
	Catalog    ports.Catalog
	Cache      ports.RouteCache
	Robot      *domain.Robot
	Logger     *zap.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps RouterDeps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	robot := boundedRobot(deps.Robot)

	orderHandler := &handlers.OrderHandler{Partitions: deps.Partitions}
	planHandler := &handlers.PlanHandler{
		Partitions: deps.Partitions,
		Catalog:    deps.Catalog,
		Cache:      deps.Cache,
		Robot:      robot,
	}
	routeHandler := &handlers.RouteHandler{}
	if robot != nil {
		routeHandler.MaxPickups = robot.MaxPickups
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(loggingMiddleware(log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(metrics.Middleware)

	r.Get("/health", handlers.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/orders/{orderID}", orderHandler.Locate)
	r.Get("/orders/{orderID}/plan", planHandler.Plan)
	r.Post("/routes", routeHandler.Solve)

	return r
}

// boundedRobot returns a copy of robot whose pickup cap never exceeds
// domain.MaxRoutePoints, so no request can start an unbounded search.
func boundedRobot(robot *domain.Robot) *domain.Robot {
	if robot == nil {
		return nil
	}
	bounded := *robot
	if bounded.MaxPickups <= 0 || bounded.MaxPickups > domain.MaxRoutePoints {
		bounded.MaxPickups = domain.MaxRoutePoints
	}
	return &bounded
}
