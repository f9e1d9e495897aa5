package domain

// Best visiting order found by the route solver.
//
// Order holds 0-based indices into the pickup points that were solved.
// Degenerate is set when there was nothing to pick up and the route is
// the direct leg from start to delivery.
type RouteResult struct {
	Order      []int
	Length     float64
	Degenerate bool
}

// Represents a single pickup in a planned route.
type PickupStop struct {
	PartID   int64
	PartName string
	Location Point
	Quantity int
}

// Represents the planned pickup route for one order.
// A PickupPlan is immutable planning data: the robot leaves Start, visits
// Stops in order and finishes at Delivery.
type PickupPlan struct {
	OrderID       uint64
	Start         Point
	Delivery      Point
	Stops         []PickupStop
	TotalDistance float64
	Degenerate    bool
	Cached        bool
}
