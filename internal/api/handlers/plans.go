package handlers

import (
	"errors"
	"net/http"
	"pickup-route-service/internal/api/dto"
	"pickup-route-service/internal/domain"
	"pickup-route-service/internal/platform/logger"
	"pickup-route-service/internal/ports"
	"pickup-route-service/internal/services"
	"strconv"

	"go.uber.org/zap"
)

type PlanHandler struct {
	Partitions []ports.OrderPartition
	Catalog    ports.Catalog
	Cache      ports.RouteCache
	Robot      *domain.Robot
}

// Plan resolves an order and returns the shortest pickup route for it.
// start_x and start_y override the robot's configured start point.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	start, err := startParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	req := services.PlanPickupsRequest{
		OrderID: orderID,
		Robot:   h.Robot,
		Start:   start,
	}

	plan, err := services.PlanPickups(r.Context(), req, h.Partitions, h.Catalog, h.Cache)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrOrderNotFound):
		writeError(w, r, http.StatusNotFound, "order not found")
		return
	case errors.Is(err, domain.ErrTooManyPickups),
		errors.Is(err, domain.ErrUnknownProduct),
		errors.Is(err, domain.ErrUnknownPart),
		errors.Is(err, domain.ErrInvalidPoint):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	default:
		logger.FromContext(r.Context()).Error("plan pickups failed", zap.Uint64("order_id", orderID), zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.PlanResponse{
		OrderID:       plan.OrderID,
		Start:         dto.FromPoint(plan.Start),
		Delivery:      dto.FromPoint(plan.Delivery),
		TotalDistance: plan.TotalDistance,
		Degenerate:    plan.Degenerate,
		Cached:        plan.Cached,
		Stops:         make([]dto.PlanStopResponse, 0, len(plan.Stops)),
	}
	for _, s := range plan.Stops {
		res.Stops = append(res.Stops, dto.PlanStopResponse{
			PartID:   s.PartID,
			PartName: s.PartName,
			Location: dto.FromPoint(s.Location),
			Quantity: s.Quantity,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// startParam reads the optional start_x/start_y query pair.
func startParam(r *http.Request) (*domain.Point, error) {
	q := r.URL.Query()
	rawX, rawY := q.Get("start_x"), q.Get("start_y")
	if rawX == "" && rawY == "" {
		return nil, nil
	}
	if rawX == "" || rawY == "" {
		return nil, errors.New("start_x and start_y must be given together")
	}

	x, err := strconv.ParseFloat(rawX, 64)
	if err != nil {
		return nil, errors.New("start_x must be a number")
	}
	y, err := strconv.ParseFloat(rawY, 64)
	if err != nil {
		return nil, errors.New("start_y must be a number")
	}

	p := domain.Point{X: x, Y: y}
	if !p.Valid() {
		return nil, domain.ErrInvalidPoint
	}
	return &p, nil
}
