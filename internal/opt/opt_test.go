package opt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"moVRP/internal/cvrp"
	"moVRP/internal/opt"
)

func TestNewResult_EmptyFrontWarns(t *testing.T) {
	res := opt.NewResult(nil, 10, 3, nil)

	require.NotNil(t, res.Front)
	require.Empty(t, res.Front)
	require.ErrorIs(t, res.Warning, opt.ErrEmptyFront)
	require.Empty(t, res.Points())
}

func TestResult_Points(t *testing.T) {
	inst, err := cvrp.NewInstance("p", cvrp.Point{}, 4, map[int]cvrp.Customer{
		1: {Point: cvrp.Point{X: 3, Y: 4}, Demand: 2},
	})
	require.NoError(t, err)
	s, err := cvrp.NewSolution([][]int{{1}}, inst)
	require.NoError(t, err)

	front := []*cvrp.Solution{s}
	res := opt.NewResult(front, 1, 1, map[string]any{"algo": "test"})
	front[0] = nil

	require.NoError(t, res.Warning)
	require.Equal(t, [][2]float64{{10, 10}}, res.Points())
}
