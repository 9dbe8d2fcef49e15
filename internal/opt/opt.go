package opt

import (
	"context"
	"errors"
	"time"

	"moVRP/internal/cvrp"
)

// ErrEmptyFront is reported through Result.Warning when a run ends without a
// non-dominated solution. It is never returned as an error.
var ErrEmptyFront = errors.New("no pareto front found")

type Optimizer interface {
	Solve(ctx context.Context, inst *cvrp.Instance) (Result, error)
}

type Result struct {
	// Front is the final rank-1 approximation; never nil.
	Front       []*cvrp.Solution
	Evaluations int
	Iterations  int
	Duration    time.Duration
	Warning     error
	Meta        map[string]any
}

// Points returns (total distance, route balance) of every front member.
func (r Result) Points() [][2]float64 {
	pts := make([][2]float64, len(r.Front))
	for i, s := range r.Front {
		pts[i] = s.Objectives()
	}
	return pts
}

// NewResult copies front so that callers may keep it after the solver is reused.
func NewResult(front []*cvrp.Solution, evals, gens int, meta map[string]any) Result {
	res := Result{
		Front:       append(make([]*cvrp.Solution, 0, len(front)), front...),
		Evaluations: evals,
		Iterations:  gens,
		Meta:        meta,
	}
	if len(front) == 0 {
		res.Warning = ErrEmptyFront
	}
	return res
}
