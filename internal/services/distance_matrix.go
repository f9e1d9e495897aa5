package services

import (
	"pickup-route-service/internal/domain"

	"gonum.org/v1/gonum/mat"
)

// BuildDistanceMatrix returns the pairwise Euclidean distances of the
// sequence [start, points..., end].
//
// Index 0 is the start, indices 1..N are the pickup points in input order
// and index N+1 is the end. The matrix is symmetric with a zero diagonal.
func BuildDistanceMatrix(start domain.Point, points []domain.Point, end domain.Point) *mat.SymDense {
	seq := make([]domain.Point, 0, len(points)+2)
	seq = append(seq, start)
	seq = append(seq, points...)
	seq = append(seq, end)

	n := len(seq)
	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			m.SetSym(i, j, seq[i].DistanceTo(seq[j]))
		}
	}
	return m
}
