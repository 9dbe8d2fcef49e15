package spea2

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"moVRP/internal/cvrp"
	"moVRP/internal/moea"
	"moVRP/internal/opt"
)

// Solver — многокритериальный алгоритм с архивом, силой доминирования и плотностью
// (SPEA2) для CVRP.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый солвер с валидацией конфигурации.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// Run — запуск с параметрами в одном вызове; результат однозначно определяется seed.
func Run(inst *cvrp.Instance, popSize, generations int, pc, pm float64, seed int64) ([]*cvrp.Solution, error) {
	s, err := New(Config{
		Population:    popSize,
		Generations:   generations,
		CrossoverRate: pc,
		MutationRate:  pm,
	}, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	res, err := s.Solve(context.Background(), inst)
	if err != nil {
		return nil, err
	}
	return res.Front, nil
}

func (s *Solver) Solve(ctx context.Context, inst *cvrp.Instance) (opt.Result, error) {
	start := time.Now()

	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}

	ev, err := cvrp.NewEvaluator(inst)
	if err != nil {
		return opt.Result{}, err
	}

	size := s.Cfg.Population
	variation := moea.Variation{
		CrossoverRate: s.Cfg.CrossoverRate,
		MutationRate:  s.Cfg.MutationRate,
	}

	// Рабочая популяция; архив изначально пуст
	pop := moea.InitialPopulation(size, ev, s.Rng)
	var archive []*cvrp.Solution
	var archiveFit []float64

	// Турнир по архиву: меньшая итоговая приспособленность
	better := func(i, j int) bool {
		return archiveFit[i] < archiveFit[j]
	}

	for gen := 0; gen < s.Cfg.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			res := s.result(pop, archive, ev.Evaluations(), gen, "context")
			res.Duration = time.Since(start)
			return res, err
		}

		// Объединение: сначала популяция, затем архив
		union := make([]*cvrp.Solution, 0, len(pop)+len(archive))
		union = append(union, pop...)
		union = append(union, archive...)

		points := moea.Points(union)
		fitness := AssignFitness(points)
		keep := EnvironmentalSelection(points, fitness, size)

		archive = make([]*cvrp.Solution, len(keep))
		archiveFit = make([]float64, len(keep))
		for k, i := range keep {
			archive[k] = union[i]
			archiveFit[k] = fitness[i]
		}

		pop = variation.Offspring(archive, size, better, ev, s.Rng)
	}

	res := s.result(pop, archive, ev.Evaluations(), s.Cfg.Generations, "")
	res.Duration = time.Since(start)
	return res, nil
}

func (s *Solver) result(pop, archive []*cvrp.Solution, evals, gens int, stopped string) opt.Result {
	meta := map[string]any{
		"algo":        "spea2",
		"population":  s.Cfg.Population,
		"generations": s.Cfg.Generations,
		"pc":          s.Cfg.CrossoverRate,
		"pm":          s.Cfg.MutationRate,
	}
	if stopped != "" {
		meta["stopped"] = stopped
	}
	// Итог берётся из архива; до первого отбора архива ещё нет
	final := archive
	if len(final) == 0 {
		final = pop
	}
	return opt.NewResult(moea.ParetoFront(final), evals, gens, meta)
}
