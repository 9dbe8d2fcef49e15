package spea2

import (
	"math"
	"slices"
	"sort"

	"moVRP/internal/moea"
)

// AssignFitness returns F(i) = R(i) + D(i) for every point of the union, lower is better.
// R is the summed strength of the dominators of i, D = 1/(σk+2) with σk the distance to
// the k-th nearest other point in normalized objective space, k = max(1, ⌊√n⌋).
// F < 1 exactly for the non-dominated points.
func AssignFitness(points [][2]float64) []float64 {
	n := len(points)
	fitness := make([]float64, n)
	if n == 0 {
		return fitness
	}

	strength := make([]int, n)
	for i := range points {
		for j := range points {
			if i != j && moea.Dominates(points[i], points[j]) {
				strength[i]++
			}
		}
	}
	for i := range points {
		raw := 0
		for j := range points {
			if i != j && moea.Dominates(points[j], points[i]) {
				raw += strength[j]
			}
		}
		fitness[i] = float64(raw)
	}

	all := make([]int, n)
	for i := range all {
		all[i] = i
	}
	norm := normalize(points, all)

	k := max(1, int(math.Sqrt(float64(n))))
	dist := make([]float64, 0, n-1)
	for i := range norm {
		dist = dist[:0]
		for j := range norm {
			if i != j {
				dist = append(dist, euclid(norm[i], norm[j]))
			}
		}
		sigma := 0.0
		if len(dist) > 0 {
			sort.Float64s(dist)
			sigma = dist[min(k, len(dist))-1]
		}
		fitness[i] += 1 / (sigma + 2)
	}
	return fitness
}

// EnvironmentalSelection picks exactly size members of the union and returns their
// indices. Non-dominated members (F < 1) come first in union order. A shortfall is
// filled by ascending fitness, ties broken by total distance and then route balance.
// A surplus is truncated one member at a time by nearest-neighbor distance.
// Inputs are not modified.
func EnvironmentalSelection(points [][2]float64, fitness []float64, size int) []int {
	var selected, rest []int
	for i, f := range fitness {
		if f < 1 {
			selected = append(selected, i)
		} else {
			rest = append(rest, i)
		}
	}

	switch {
	case len(selected) < size:
		sort.SliceStable(rest, func(a, b int) bool {
			i, j := rest[a], rest[b]
			if fitness[i] != fitness[j] {
				return fitness[i] < fitness[j]
			}
			if points[i][0] != points[j][0] {
				return points[i][0] < points[j][0]
			}
			return points[i][1] < points[j][1]
		})
		selected = append(selected, rest[:min(len(rest), size-len(selected))]...)
	case len(selected) > size:
		selected = truncate(points, selected, size)
	}

	moea.MustSize("spea2 archive", len(selected), size)
	return selected
}

// truncate removes the member closest to its nearest remaining neighbor until size
// remain. Normalization is recomputed over the remaining members after each removal;
// ties remove the earlier member.
func truncate(points [][2]float64, members []int, size int) []int {
	members = slices.Clone(members)
	for len(members) > size {
		norm := normalize(points, members)

		victim, closest := 0, math.Inf(1)
		for a := range norm {
			nearest := math.Inf(1)
			for b := range norm {
				if a != b {
					nearest = min(nearest, euclid(norm[a], norm[b]))
				}
			}
			if nearest < closest {
				victim, closest = a, nearest
			}
		}
		members = slices.Delete(members, victim, victim+1)
	}
	return members
}

// normalize maps points[idx] to [0,1] per objective; a zero range maps to 0.
func normalize(points [][2]float64, idx []int) [][2]float64 {
	lo := [2]float64{math.Inf(1), math.Inf(1)}
	hi := [2]float64{math.Inf(-1), math.Inf(-1)}
	for _, i := range idx {
		for m := range lo {
			lo[m] = min(lo[m], points[i][m])
			hi[m] = max(hi[m], points[i][m])
		}
	}

	out := make([][2]float64, len(idx))
	for k, i := range idx {
		for m := range lo {
			if span := hi[m] - lo[m]; span > 0 {
				out[k][m] = (points[i][m] - lo[m]) / span
			}
		}
	}
	return out
}

func euclid(a, b [2]float64) float64 {
	return math.Hypot(a[0]-b[0], a[1]-b[1])
}
