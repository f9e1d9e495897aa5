package domain

// Represents a customer order as stored in an order partition.
// ProductIDs may repeat when the same product is ordered more than once.
type Order struct {
	OrderID       uint64
	DeliveryPoint Point
	ProductIDs    []int64
}

// A partition that could not be scanned while locating an order.
type PartitionFailure struct {
	Partition string
	Err       error
}

// Outcome of a concurrent order lookup across partitions.
//
// At most one partition commits a match. Further matches for the same
// order are counted in DuplicateMatches and otherwise ignored.
type LocateResult struct {
	Found            bool
	Order            Order
	Partition        string
	DuplicateMatches int
	Unavailable      []PartitionFailure
}
