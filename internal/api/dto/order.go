package dto

type UnavailablePartition struct {
	Partition string `json:"partition"`
	Error     string `json:"error"`
}

type LocateResponse struct {
	OrderID          uint64                 `json:"order_id"`
	Found            bool                   `json:"found"`
	Partition        string                 `json:"partition,omitempty"`
	DeliveryPoint    *Point                 `json:"delivery_point,omitempty"`
	ProductIDs       []int64                `json:"product_ids"`
	DuplicateMatches int                    `json:"duplicate_matches"`
	Unavailable      []UnavailablePartition `json:"unavailable_partitions"`
}
