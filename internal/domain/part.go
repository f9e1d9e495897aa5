package domain

// A part stocked at a fixed pickup location.
// Part IDs are assigned by the catalog and are stable for its lifetime.
type Part struct {
	PartID   int64
	Name     string
	Location Point
}

// A product is assembled from parts; Parts maps part ID to the number
// of units of that part the product needs.
type Product struct {
	ProductID int64
	Name      string
	Parts     map[int64]int
}
