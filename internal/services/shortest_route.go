package services

import (
	"math"
	"pickup-route-service/internal/domain"
)

// ShortestRoute finds the visiting order of points that minimizes the
// total distance from start to end.
//
// Every permutation is evaluated in lexicographic order and the first one
// reaching the minimum wins, so the result is exact and deterministic.
// The search is O(N!·N): callers must keep N small (about ten points
// already takes seconds).
//
// With no points the route is degenerate: an empty order and the direct
// start -> end distance.
func ShortestRoute(start domain.Point, points []domain.Point, end domain.Point) domain.RouteResult {
	m := BuildDistanceMatrix(start, points, end)

	if len(points) == 0 {
		return domain.RouteResult{
			Order:      []int{},
			Length:     RouteLength(m, nil),
			Degenerate: true,
		}
	}

	perm := make([]int, len(points))
	for i := range perm {
		perm[i] = i + 1
	}

	best := make([]int, len(perm))
	bestLength := math.Inf(1)
	for {
		if l := RouteLength(m, perm); l < bestLength {
			bestLength = l
			copy(best, perm)
		}
		if !nextPermutation(perm) {
			break
		}
	}

	order := make([]int, len(best))
	for i, idx := range best {
		order[i] = idx - 1
	}

	return domain.RouteResult{
		Order:  order,
		Length: bestLength,
	}
}

// nextPermutation rearranges p into its lexicographic successor.
// It returns false, leaving p untouched, when p is the last permutation.
func nextPermutation(p []int) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}

	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]

	for l, r := i+1, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
	return true
}
