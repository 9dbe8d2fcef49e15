package nsga2

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"moVRP/internal/cvrp"
)

// pointSolutions builds single-customer solutions whose objectives are set directly;
// survival only looks at objectives.
func pointSolutions(pts [][2]float64) []*cvrp.Solution {
	out := make([]*cvrp.Solution, len(pts))
	for i, p := range pts {
		out[i] = &cvrp.Solution{Routes: [][]int{{i + 1}}, TotalDistance: p[0], RouteBalance: p[1]}
	}
	return out
}

func TestSurvive_WholeFrontsThenCrowding(t *testing.T) {
	merged := pointSolutions([][2]float64{
		{1, 9}, {5, 5}, {9, 1}, // front 1
		{2, 10}, {6, 7}, {7, 6}, {10, 2}, // front 2
		{12, 12}, // front 3
	})

	next, rank, crowd := survive(merged, 5)
	require.Len(t, next, 5)
	require.Equal(t, []int{1, 1, 1, 2, 2}, rank)

	require.Same(t, merged[0], next[0])
	require.Same(t, merged[1], next[1])
	require.Same(t, merged[2], next[2])
	// boundary members of the overflowing front win
	require.Same(t, merged[3], next[3])
	require.Same(t, merged[6], next[4])

	require.InDelta(t, 2.0, crowd[1], 1e-12)
	for _, i := range []int{0, 2, 3, 4} {
		require.True(t, math.IsInf(crowd[i], 1))
	}
}

func TestSurvive_ExactFit(t *testing.T) {
	merged := pointSolutions([][2]float64{{1, 3}, {3, 1}, {2, 2}, {4, 4}})

	next, rank, _ := survive(merged, 3)
	require.Len(t, next, 3)
	require.Equal(t, []int{1, 1, 1}, rank)
	require.NotContains(t, next, merged[3])
}
