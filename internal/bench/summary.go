package bench

import (
	"sort"

	"moVRP/internal/quality"
)

// Record summarizes all runs of one algorithm and parameter set on one instance.
type Record struct {
	Algo      string
	Params    string
	Instance  string
	Customers int
	Runs      int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	EvaluationsMean float64
	FrontSizeMean   float64
	Warnings        int

	HVBest  float64
	HVMean  float64
	HVStd   float64
	IGDBest float64
	IGDMean float64
	IGDStd  float64
}

// Coverage is C(A, B) between the merged fronts of two groups on one instance.
type Coverage struct {
	Instance string
	A, B     string
	Value    float64
}

// Group is every run of one algorithm and parameter set on one instance.
type Group struct {
	Algo      string
	Params    string
	Customers int
	Runs      []Run
}

func (g Group) label() string {
	if g.Params == "" {
		return g.Algo
	}
	return g.Algo + "/" + g.Params
}

func (g Group) points() []quality.Point {
	var pts []quality.Point
	for _, r := range g.Runs {
		pts = append(pts, r.Result.Points()...)
	}
	return pts
}

// Summarize compares groups that ran on the same instance. Hypervolume uses one
// reference point and IGD one reference set (the merged non-dominated front) shared
// by all groups, so values are comparable across rows.
func Summarize(instance string, groups []Group) ([]Record, []Coverage) {
	all := make([][]quality.Point, len(groups))
	for i, g := range groups {
		all[i] = g.points()
	}
	ref := quality.ReferencePoint(0.1, all...)
	refSet := quality.NonDominated(all...)

	records := make([]Record, 0, len(groups))
	for _, g := range groups {
		var times, evals, sizes, hvs, igds []float64
		warnings := 0
		for _, r := range g.Runs {
			pts := r.Result.Points()
			times = append(times, float64(r.Result.Duration.Microseconds())/1000.0)
			evals = append(evals, float64(r.Result.Evaluations))
			sizes = append(sizes, float64(len(pts)))
			hvs = append(hvs, quality.Hypervolume2D(pts, ref))
			igds = append(igds, quality.IGD(pts, refSet))
			if r.Result.Warning != nil {
				warnings++
			}
		}

		t := CalcFloatStats(times)
		hv := CalcMaxStats(hvs)
		igd := CalcFloatStats(igds)
		records = append(records, Record{
			Algo:      g.Algo,
			Params:    g.Params,
			Instance:  instance,
			Customers: g.Customers,
			Runs:      len(g.Runs),

			TimeBestMs: t.Best,
			TimeMeanMs: t.Mean,
			TimeStdMs:  t.Std,

			EvaluationsMean: CalcFloatStats(evals).Mean,
			FrontSizeMean:   CalcFloatStats(sizes).Mean,
			Warnings:        warnings,

			HVBest:  hv.Best,
			HVMean:  hv.Mean,
			HVStd:   hv.Std,
			IGDBest: igd.Best,
			IGDMean: igd.Mean,
			IGDStd:  igd.Std,
		})
	}

	var cov []Coverage
	for i := range groups {
		for j := range groups {
			if i == j {
				continue
			}
			cov = append(cov, Coverage{
				Instance: instance,
				A:        groups[i].label(),
				B:        groups[j].label(),
				Value:    quality.Coverage(all[i], all[j]),
			})
		}
	}
	sort.SliceStable(cov, func(a, b int) bool {
		if cov[a].A != cov[b].A {
			return cov[a].A < cov[b].A
		}
		return cov[a].B < cov[b].B
	})
	return records, cov
}
