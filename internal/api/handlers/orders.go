package handlers

import (
	"net/http"
	"pickup-route-service/internal/api/dto"
	"pickup-route-service/internal/ports"
	"pickup-route-service/internal/services"
)

// OrderHandler exposes order lookups across all configured partitions.
type OrderHandler struct {
	Partitions []ports.OrderPartition
}

func (h *OrderHandler) Locate(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res := services.LocateOrder(r.Context(), orderID, h.Partitions)
	services.ReportLocate(r.Context(), orderID, res)

	body := dto.LocateResponse{
		OrderID:          orderID,
		Found:            res.Found,
		Partition:        res.Partition,
		ProductIDs:       res.Order.ProductIDs,
		DuplicateMatches: res.DuplicateMatches,
		Unavailable:      make([]dto.UnavailablePartition, 0, len(res.Unavailable)),
	}
	if body.ProductIDs == nil {
		body.ProductIDs = []int64{}
	}
	if res.Found {
		p := dto.FromPoint(res.Order.DeliveryPoint)
		body.DeliveryPoint = &p
	}
	for _, f := range res.Unavailable {
		body.Unavailable = append(body.Unavailable, dto.UnavailablePartition{
			Partition: f.Partition,
			Error:     f.Err.Error(),
		})
	}

	status := http.StatusOK
	if !res.Found {
		status = http.StatusNotFound
	}
	writeJSON(w, r, status, body)
}
