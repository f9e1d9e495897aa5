package dto

type RouteRequest struct {
	Start  *Point  `json:"start"`
	Points []Point `json:"points"`
	End    *Point  `json:"end"`
}

type RouteResponse struct {
	Order      []int   `json:"order"`
	Length     float64 `json:"length"`
	Degenerate bool    `json:"degenerate"`
}
