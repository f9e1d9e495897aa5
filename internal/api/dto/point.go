package dto

import "pickup-route-service/internal/domain"

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) ToDomain() domain.Point { return domain.Point{X: p.X, Y: p.Y} }

func FromPoint(p domain.Point) Point { return Point{X: p.X, Y: p.Y} }
