// Package quality compares approximation fronts given as (total distance, route balance)
// pairs. Both objectives are minimized.
package quality

import (
	"math"
	"sort"
)

type Point = [2]float64

// Dedupe drops points equal to an earlier one after rounding to 6 decimals.
// The first occurrence is kept unrounded.
func Dedupe(points []Point) []Point {
	seen := make(map[Point]struct{}, len(points))
	out := make([]Point, 0, len(points))
	for _, p := range points {
		key := Point{round6(p[0]), round6(p[1])}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// Hypervolume2D is the area dominated by points and bounded by ref. Points outside
// the reference box contribute nothing.
func Hypervolume2D(points []Point, ref Point) float64 {
	pts := Dedupe(points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i][0] != pts[j][0] {
			return pts[i][0] < pts[j][0]
		}
		return pts[i][1] < pts[j][1]
	})

	hv, prev := 0.0, ref[1]
	best := math.Inf(1)
	for _, p := range pts {
		if p[1] >= best {
			continue
		}
		best = p[1]
		hv += math.Max(0, ref[0]-p[0]) * math.Max(0, prev-p[1])
		prev = math.Min(prev, p[1])
	}
	return hv
}

// IGD is the mean distance from each reference point to its nearest approximation
// point. It is +Inf when either set is empty.
func IGD(approx, reference []Point) float64 {
	if len(approx) == 0 || len(reference) == 0 {
		return math.Inf(1)
	}
	a := Dedupe(approx)
	r := Dedupe(reference)

	total := 0.0
	for _, rp := range r {
		nearest := math.Inf(1)
		for _, ap := range a {
			nearest = math.Min(nearest, math.Hypot(rp[0]-ap[0], rp[1]-ap[1]))
		}
		total += nearest
	}
	return total / float64(len(r))
}

// Coverage C(a, b) is the share of b weakly dominated by some member of a.
func Coverage(a, b []Point) float64 {
	covered := 0
	for _, q := range b {
		for _, p := range a {
			if p[0] <= q[0] && p[1] <= q[1] {
				covered++
				break
			}
		}
	}
	return float64(covered) / float64(max(1, len(b)))
}

// ReferencePoint returns the per-objective maximum over all sets scaled by 1+margin,
// so every point of every set dominates it when margin > 0.
func ReferencePoint(margin float64, sets ...[]Point) Point {
	ref := Point{math.Inf(-1), math.Inf(-1)}
	for _, set := range sets {
		for _, p := range set {
			ref[0] = math.Max(ref[0], p[0])
			ref[1] = math.Max(ref[1], p[1])
		}
	}
	if math.IsInf(ref[0], -1) {
		return Point{}
	}
	return Point{ref[0] * (1 + margin), ref[1] * (1 + margin)}
}

// NonDominated merges sets into their common non-dominated subset, deduplicated and
// sorted by the first objective. It serves as the reference set for IGD.
func NonDominated(sets ...[]Point) []Point {
	var all []Point
	for _, set := range sets {
		all = append(all, set...)
	}
	all = Dedupe(all)

	out := make([]Point, 0, len(all))
	for i, p := range all {
		dominated := false
		for j, q := range all {
			if i != j && q[0] <= p[0] && q[1] <= p[1] && (q[0] < p[0] || q[1] < p[1]) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}
