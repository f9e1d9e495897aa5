package services

import "gonum.org/v1/gonum/mat"

// RouteLength sums the legs start -> order[0] -> ... -> order[k-1] -> end.
//
// order holds matrix-local indices (1..N) and must be a permutation of
// them; start is index 0 and end is the last index of m.
func RouteLength(m mat.Matrix, order []int) float64 {
	n, _ := m.Dims()
	end := n - 1

	current := 0
	length := 0.0
	for _, next := range order {
		length += m.At(current, next)
		current = next
	}
	return length + m.At(current, end)
}
