package bench

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type FloatStats struct {
	N    int
	Best float64
	Mean float64
	Std  float64
}

// CalcFloatStats uses the sample standard deviation; it is 0 for fewer than two values.
// Best is the minimum.
func CalcFloatStats(values []float64) FloatStats {
	s := FloatStats{N: len(values)}
	if s.N == 0 {
		return s
	}

	s.Best = floats.Min(values)
	if s.N < 2 {
		s.Mean = values[0]
		return s
	}
	s.Mean, s.Std = stat.MeanStdDev(values, nil)
	if math.IsNaN(s.Std) {
		s.Std = 0
	}
	return s
}

// CalcMaxStats is CalcFloatStats with Best as the maximum, for higher-is-better values.
func CalcMaxStats(values []float64) FloatStats {
	s := CalcFloatStats(values)
	if s.N > 0 {
		s.Best = floats.Max(values)
	}
	return s
}
