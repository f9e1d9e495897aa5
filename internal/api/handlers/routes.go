package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"pickup-route-service/internal/api/dto"
	"pickup-route-service/internal/domain"
	"pickup-route-service/internal/services"
)

// RouteHandler solves ad-hoc routes through caller supplied points.
type RouteHandler struct {
	// Upper bound on len(points). Zero, or anything above
	// domain.MaxRoutePoints, means domain.MaxRoutePoints.
	MaxPickups int
}

func (h *RouteHandler) Solve(w http.ResponseWriter, r *http.Request) {
	var req dto.RouteRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.Start == nil || req.End == nil {
		writeError(w, r, http.StatusBadRequest, "start and end are required")
		return
	}

	start, end := req.Start.ToDomain(), req.End.ToDomain()
	if !start.Valid() || !end.Valid() {
		writeError(w, r, http.StatusBadRequest, domain.ErrInvalidPoint.Error())
		return
	}

	limit := h.MaxPickups
	if limit <= 0 || limit > domain.MaxRoutePoints {
		limit = domain.MaxRoutePoints
	}
	if len(req.Points) > limit {
		writeError(w, r, http.StatusUnprocessableEntity,
			fmt.Sprintf("at most %d points can be routed, got %d", limit, len(req.Points)))
		return
	}

	points := make([]domain.Point, 0, len(req.Points))
	for _, p := range req.Points {
		pt := p.ToDomain()
		if !pt.Valid() {
			writeError(w, r, http.StatusBadRequest, domain.ErrInvalidPoint.Error())
			return
		}
		points = append(points, pt)
	}

	route := services.ShortestRoute(start, points, end)

	writeJSON(w, r, http.StatusOK, dto.RouteResponse{
		Order:      route.Order,
		Length:     route.Length,
		Degenerate: route.Degenerate,
	})
}
