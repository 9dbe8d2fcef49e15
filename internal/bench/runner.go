package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"moVRP/internal/cvrp"
	"moVRP/internal/obs"
	"moVRP/internal/opt"
)

type Algorithm struct {
	Name    string
	Params  string
	Factory func(seed int64) opt.Optimizer
}

type Case struct {
	Instance *cvrp.Instance
}

// Run is the outcome of one seeded solve.
type Run struct {
	ID       uuid.UUID
	Algo     string
	Params   string
	Instance string
	Seed     int64
	Result   opt.Result
}

type Observer interface {
	ObserveRun(algo, instance string, res opt.Result)
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = no timeout
	Parallel      int           // 0 = one goroutine per run
	Observer      Observer
}

// RunCase solves c with seeds BaseSeed, BaseSeed+1, ... Runs are independent and may
// execute in parallel; runs[i] always holds the run with seed BaseSeed+i.
func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) ([]Run, error) {
	if r.Runs <= 0 {
		return nil, fmt.Errorf("runs must be > 0 (got %d)", r.Runs)
	}
	if err := c.Instance.Validate(); err != nil {
		return nil, err
	}

	runs := make([]Run, r.Runs)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	if r.Parallel > 0 {
		p = p.WithMaxGoroutines(r.Parallel)
	}

	for i := 0; i < r.Runs; i++ {
		i := i // per-iteration copy (go directive < 1.22)
		p.Go(func(ctx context.Context) error {
			run, err := r.runOne(ctx, c.Instance, algo, r.BaseSeed+int64(i))
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			runs[i] = run
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}

func (r Runner) runOne(ctx context.Context, inst *cvrp.Instance, algo Algorithm, seed int64) (run Run, err error) {
	run = Run{
		ID:       uuid.New(),
		Algo:     algo.Name,
		Params:   algo.Params,
		Instance: inst.Name,
		Seed:     seed,
	}
	ctx = obs.WithRunID(ctx, run.ID.String())
	defer obs.Time(ctx, "bench.run."+algo.Name)(&err)

	runCtx := ctx
	cancel := func() {}
	if r.PerRunTimeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
	}
	defer cancel()

	start := time.Now()
	res, err := algo.Factory(seed).Solve(runCtx, inst)
	if res.Duration == 0 {
		res.Duration = time.Since(start)
	}
	if err != nil && runCtx.Err() != nil {
		return Run{}, fmt.Errorf("cancelled/timeout: %w", err)
	}
	if err != nil {
		return Run{}, fmt.Errorf("solve error: %w", err)
	}
	for i, s := range res.Front {
		if got := len(cvrp.RoutesToTour(s.Routes)); got != len(inst.Customers) {
			return Run{}, fmt.Errorf("front member %d visits %d customers (want %d)", i, got, len(inst.Customers))
		}
	}

	run.Result = res
	if r.Observer != nil {
		r.Observer.ObserveRun(algo.Name, inst.Name, res)
	}
	return run, nil
}
