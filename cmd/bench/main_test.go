package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"moVRP/internal/config"
)

func TestSplitCSV(t *testing.T) {
	require.Equal(t, []string{"NSGA2", "SPEA2"}, splitCSV(" NSGA2, ,SPEA2,"))
	require.Empty(t, splitCSV(""))
}

func TestBuildAlgorithms(t *testing.T) {
	sets := config.DefaultParamSets()[:2]

	algos, err := buildAlgorithms([]string{"nsga2", "SPEA2"}, sets)
	require.NoError(t, err)
	require.Len(t, algos, 4)
	require.Equal(t, "NSGA2", algos[0].Name)
	require.Equal(t, "default", algos[0].Params)
	require.Equal(t, "SPEA2", algos[3].Name)
	require.Equal(t, "high_mutation", algos[3].Params)
	require.NotNil(t, algos[0].Factory(1))

	_, err = buildAlgorithms([]string{"GA"}, sets)
	require.Error(t, err)

	_, err = buildAlgorithms([]string{"NSGA2"}, []config.ParamSet{{Name: "bad", Population: 1, Generations: 1}})
	require.Error(t, err)
}

func TestLoadCases(t *testing.T) {
	exp := config.DefaultExperiment()
	exp.Random = []string{"10x20", "15x30"}

	cases, err := loadCases(exp)
	require.NoError(t, err)
	require.Len(t, cases, 2)
	require.Len(t, cases[1].Instance.Customers, 15)

	again, err := loadCases(exp)
	require.NoError(t, err)
	require.Equal(t, cases[0].Instance.Customers, again[0].Instance.Customers)

	exp.Instances = []string{"testdata/missing.vrp"}
	_, err = loadCases(exp)
	require.Error(t, err)
}
