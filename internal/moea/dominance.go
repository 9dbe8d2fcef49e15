package moea

import (
	"math"
	"sort"
)

// Dominates reports whether a Pareto-dominates b under minimization.
func Dominates(a, b [2]float64) bool {
	better := false
	for m := range a {
		if a[m] > b[m] {
			return false
		}
		if a[m] < b[m] {
			better = true
		}
	}
	return better
}

// FastNonDominatedSort splits points into fronts of indices, best first.
// rank[i] is 1 for the first front, 2 for the second and so on.
// All counters are local to the call, so points is only read.
func FastNonDominatedSort(points [][2]float64) (fronts [][]int, rank []int) {
	n := len(points)
	rank = make([]int, n)
	if n == 0 {
		return nil, rank
	}

	dominatedSet := make([][]int, n)
	dominationCount := make([]int, n)

	var current []int
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			if p == q {
				continue
			}
			if Dominates(points[p], points[q]) {
				dominatedSet[p] = append(dominatedSet[p], q)
			} else if Dominates(points[q], points[p]) {
				dominationCount[p]++
			}
		}
		if dominationCount[p] == 0 {
			rank[p] = 1
			current = append(current, p)
		}
	}

	for layer := 1; len(current) > 0; layer++ {
		fronts = append(fronts, current)
		var next []int
		for _, p := range current {
			for _, q := range dominatedSet[p] {
				dominationCount[q]--
				if dominationCount[q] == 0 {
					rank[q] = layer + 1
					next = append(next, q)
				}
			}
		}
		current = next
	}
	return fronts, rank
}

// CrowdingDistance returns the crowding distance of each front member; the result
// is aligned with front. Neither points nor front are reordered.
func CrowdingDistance(points [][2]float64, front []int) []float64 {
	dist := make([]float64, len(front))
	if len(front) <= 2 {
		for i := range dist {
			dist[i] = math.Inf(1)
		}
		return dist
	}

	order := make([]int, len(front))
	for m := 0; m < 2; m++ {
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return points[front[order[a]]][m] < points[front[order[b]]][m]
		})

		first, last := order[0], order[len(order)-1]
		dist[first] = math.Inf(1)
		dist[last] = math.Inf(1)

		span := points[front[last]][m] - points[front[first]][m]
		if span == 0 {
			continue
		}
		for k := 1; k < len(order)-1; k++ {
			gap := points[front[order[k+1]]][m] - points[front[order[k-1]]][m]
			dist[order[k]] += gap / span
		}
	}
	return dist
}

// SortByCrowding returns a copy of front ordered by crowding distance, largest first.
// Ties keep their front order.
func SortByCrowding(front []int, crowding []float64) []int {
	idx := make([]int, len(front))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return crowding[idx[a]] > crowding[idx[b]]
	})
	out := make([]int, len(front))
	for i, k := range idx {
		out[i] = front[k]
	}
	return out
}
