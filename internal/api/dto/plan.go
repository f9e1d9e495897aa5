package dto

type PlanStopResponse struct {
	PartID   int64  `json:"part_id"`
	PartName string `json:"part_name"`
	Location Point  `json:"location"`
	Quantity int    `json:"quantity"`
}

type PlanResponse struct {
	OrderID       uint64             `json:"order_id"`
	Start         Point              `json:"start"`
	Delivery      Point              `json:"delivery"`
	TotalDistance float64            `json:"total_distance"`
	Degenerate    bool               `json:"degenerate"`
	Cached        bool               `json:"cached"`
	Stops         []PlanStopResponse `json:"stops"`
}
