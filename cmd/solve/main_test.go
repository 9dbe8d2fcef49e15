package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadInstance(t *testing.T) {
	inst, err := loadInstance("../../data/A-n9-k3.vrp", "", 0)
	require.NoError(t, err)
	require.Equal(t, "A-n9-k3", inst.Name)
	require.Len(t, inst.Customers, 8)

	inst, err = loadInstance("", "12x30", 4)
	require.NoError(t, err)
	require.Len(t, inst.Customers, 12)

	_, err = loadInstance("", "", 0)
	require.Error(t, err)
}

func TestSolverFactory(t *testing.T) {
	inst, err := loadInstance("../../data/A-n9-k3.vrp", "", 0)
	require.NoError(t, err)

	for _, algo := range []string{"nsga2", "SPEA2"} {
		newSolver, err := solverFactory(algo, 8, 3, 0.7, 0.2)
		require.NoError(t, err)

		res, err := newSolver(1).Solve(context.Background(), inst)
		require.NoError(t, err)
		require.NotEmpty(t, res.Front)
		require.Equal(t, 8+3*8, res.Evaluations)
	}

	_, err = solverFactory("ga", 8, 3, 0.7, 0.2)
	require.Error(t, err)
	_, err = solverFactory("nsga2", 1, 3, 0.7, 0.2)
	require.Error(t, err)
}
