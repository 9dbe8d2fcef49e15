package quality_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"moVRP/internal/quality"
)

func TestHypervolume2D(t *testing.T) {
	require.Equal(t, 1.0, quality.Hypervolume2D([]quality.Point{{1, 1}}, quality.Point{2, 2}))

	// staircase: 3*1 + 2*1 + 1*1
	pts := []quality.Point{{3, 1}, {1, 3}, {2, 2}, {2, 2.5}}
	require.InDelta(t, 6.0, quality.Hypervolume2D(pts, quality.Point{4, 4}), 1e-12)

	require.Zero(t, quality.Hypervolume2D(nil, quality.Point{4, 4}))
	require.Zero(t, quality.Hypervolume2D([]quality.Point{{5, 5}}, quality.Point{4, 4}))
}

func TestDedupe(t *testing.T) {
	got := quality.Dedupe([]quality.Point{{1, 2}, {1.0000001, 2}, {1, 2.1}, {1, 2}})
	require.Equal(t, []quality.Point{{1, 2}, {1, 2.1}}, got)
}

func TestIGD(t *testing.T) {
	ref := []quality.Point{{0, 1}, {1, 0}}
	require.Zero(t, quality.IGD(ref, ref))
	require.InDelta(t, 0.5, quality.IGD([]quality.Point{{0, 0.5}, {1, 0.5}}, ref), 1e-12)
	require.True(t, math.IsInf(quality.IGD(nil, ref), 1))
	require.True(t, math.IsInf(quality.IGD(ref, nil), 1))
}

func TestCoverage(t *testing.T) {
	a := []quality.Point{{1, 1}}
	b := []quality.Point{{1, 1}, {2, 0.5}, {3, 3}}

	require.InDelta(t, 2.0/3.0, quality.Coverage(a, b), 1e-12)
	require.Zero(t, quality.Coverage(b[1:2], a))
	require.Zero(t, quality.Coverage(a, nil))
}

func TestReferencePointAndNonDominated(t *testing.T) {
	a := []quality.Point{{1, 4}, {3, 2}}
	b := []quality.Point{{2, 5}, {4, 1}, {3, 2}}

	ref := quality.ReferencePoint(0.1, a, b)
	require.InDelta(t, 4.4, ref[0], 1e-12)
	require.InDelta(t, 5.5, ref[1], 1e-12)
	require.Equal(t, quality.Point{}, quality.ReferencePoint(0.1))
	require.Equal(t, []quality.Point{{1, 4}, {3, 2}, {4, 1}}, quality.NonDominated(a, b))
}
