package nsga2

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"moVRP/internal/cvrp"
	"moVRP/internal/moea"
	"moVRP/internal/opt"
)

// Solver — многокритериальный эволюционный алгоритм с ранжированием по фронтам
// и расстоянием скученности (NSGA-II) для CVRP.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый солвер с валидацией конфигурации.
// Генератор принадлежит солверу: один поток случайных чисел на запуск.
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

	// Оценщик считает вычисления целевых функций только этого запуска
	ev, err := cvrp.NewEvaluator(inst)
	if err != nil {
		return opt.Result{}, err
	}

	size := s.Cfg.Population
	variation := moea.Variation{
		CrossoverRate: s.Cfg.CrossoverRate,
		MutationRate:  s.Cfg.MutationRate,
	}

	// Начальная популяция: случайное жадное построение маршрутов
	pop := moea.InitialPopulation(size, ev, s.Rng)
	_, rank, crowd := rankAndCrowd(moea.Points(pop))

	// Турнир: меньший ранг, при равенстве большее расстояние скученности
	better := func(i, j int) bool {
		if rank[i] != rank[j] {
			return rank[i] < rank[j]
		}
		return crowd[i] > crowd[j]
	}

	for gen := 0; gen < s.Cfg.Generations; gen++ {
		// Остановка возможна только между поколениями
		if err := ctx.Err(); err != nil {
			res := s.result(pop, ev.Evaluations(), gen, "context")
			res.Duration = time.Since(start)
			return res, err
		}

		children := variation.Offspring(pop, size, better, ev, s.Rng)

		merged := make([]*cvrp.Solution, 0, 2*size)
		merged = append(merged, pop...)
		merged = append(merged, children...)

		pop, rank, crowd = survive(merged, size)
	}

	res := s.result(pop, ev.Evaluations(), s.Cfg.Generations, "")
	res.Duration = time.Since(start)
	return res, nil
}

func (s *Solver) result(pop []*cvrp.Solution, evals, gens int, stopped string) opt.Result {
	meta := map[string]any{
		"algo":        "nsga2",
		"population":  s.Cfg.Population,
		"generations": s.Cfg.Generations,
		"pc":          s.Cfg.CrossoverRate,
		"pm":          s.Cfg.MutationRate,
	}
	if stopped != "" {
		meta["stopped"] = stopped
	}
	// Итоговое переранжирование: возвращается только первый фронт
	return opt.NewResult(moea.ParetoFront(pop), evals, gens, meta)
}

// rankAndCrowd ранжирует точки и считает расстояние скученности внутри каждого фронта.
// Оба среза выровнены по индексам points.
func rankAndCrowd(points [][2]float64) (fronts [][]int, rank []int, crowd []float64) {
	fronts, rank = moea.FastNonDominatedSort(points)
	crowd = make([]float64, len(points))
	for _, front := range fronts {
		dist := moea.CrowdingDistance(points, front)
		for k, i := range front {
			crowd[i] = dist[k]
		}
	}
	return fronts, rank, crowd
}

// survive отбирает ровно size особей из объединения родителей и потомков:
// целые фронты, пока помещаются, затем лучшие по скученности из переполняющего фронта.
func survive(merged []*cvrp.Solution, size int) ([]*cvrp.Solution, []int, []float64) {
	fronts, rank, crowd := rankAndCrowd(moea.Points(merged))

	next := make([]*cvrp.Solution, 0, size)
	nextRank := make([]int, 0, size)
	nextCrowd := make([]float64, 0, size)
	take := func(i int) {
		next = append(next, merged[i])
		nextRank = append(nextRank, rank[i])
		nextCrowd = append(nextCrowd, crowd[i])
	}

	for _, front := range fronts {
		free := size - len(next)
		if free == 0 {
			break
		}
		if len(front) <= free {
			for _, i := range front {
				take(i)
			}
			continue
		}

		dist := make([]float64, len(front))
		for k, i := range front {
			dist[k] = crowd[i]
		}
		for _, i := range moea.SortByCrowding(front, dist)[:free] {
			take(i)
		}
	}

	moea.MustSize("nsga2 survival", len(next), size)
	return next, nextRank, nextCrowd
}
