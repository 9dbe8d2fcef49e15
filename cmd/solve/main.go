package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"moVRP/internal/bench"
	"moVRP/internal/cvrp"
	"moVRP/internal/nsga2"
	"moVRP/internal/opt"
	"moVRP/internal/spea2"
)

func main() {
	var (
		algorithm = flag.String("algorithm", "nsga2", "алгоритм: nsga2 | spea2")
		instPath  = flag.String("instance", "", "файл экземпляра CVRPLIB")
		random    = flag.String("random", "", "случайный экземпляр NxQ, если -instance не задан")
		runs      = flag.Int("runs", 1, "количество независимых запусков")
		popSize   = flag.Int("pop-size", 100, "размер популяции")
		gens      = flag.Int("generations", 500, "количество поколений")
		pc        = flag.Float64("crossover-prob", 0.7, "вероятность кроссовера")
		pm        = flag.Float64("mutation-prob", 0.2, "вероятность мутации")
		seed      = flag.Int64("seed", 0, "сид; 0 — от текущего времени")
		show      = flag.Int("show", 5, "сколько решений фронта вывести")
		verbose   = flag.Bool("routes", false, "выводить маршруты показанных решений")
	)
	flag.Parse()

	inst, err := loadInstance(*instPath, *random, *seed)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		os.Exit(2)
	}

	newSolver, err := solverFactory(*algorithm, *popSize, *gens, *pc, *pm)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		os.Exit(2)
	}

	fmt.Println(inst)
	fmt.Printf("Вместимость: %d\n", inst.Capacity)
	fmt.Printf("Клиентов: %d\n\n", len(inst.Customers))

	baseSeed := *seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	ctx := context.Background()
	totalEvals, totalFront := 0, 0
	for run := 0; run < *runs; run++ {
		fmt.Println(strings.Repeat("=", 60))
		fmt.Printf("Запуск %d/%d\n", run+1, *runs)
		fmt.Println(strings.Repeat("=", 60))

		res, err := newSolver(baseSeed + int64(run)).Solve(ctx, inst)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Ошибка:", err)
			os.Exit(1)
		}
		totalEvals += res.Evaluations
		totalFront += len(res.Front)

		fmt.Printf("\nЗапуск завершён за %.2f с\n", res.Duration.Seconds())
		fmt.Printf("Размер фронта Парето: %d\n", len(res.Front))
		fmt.Printf("Вычислений целевых функций: %d\n", res.Evaluations)
		if res.Warning != nil {
			fmt.Printf("Предупреждение: %v\n", res.Warning)
		}

		fmt.Println("\nРешения с фронта Парето:")
		for i, sol := range res.Front[:max(0, min(*show, len(res.Front)))] {
			fmt.Printf("  %d. Расстояние: %.2f, Баланс: %.2f, Маршрутов: %d\n",
				i+1, sol.TotalDistance, sol.RouteBalance, len(sol.Routes))
			if *verbose {
				for _, ri := range sol.RouteInfo() {
					fmt.Printf("     #%d %v нагрузка=%d/%d длина=%.2f\n", ri.Route, ri.Customers, ri.Load, inst.Capacity, ri.Distance)
				}
			}
		}
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Итог")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Алгоритм: %s\n", strings.ToUpper(*algorithm))
	fmt.Printf("Экземпляр: %s\n", inst.Name)
	fmt.Printf("Запусков: %d\n", *runs)
	fmt.Printf("Средний размер фронта: %.1f\n", float64(totalFront)/float64(max(1, *runs)))
	fmt.Printf("Всего вычислений: %d\n", totalEvals)
}

func loadInstance(path, random string, seed int64) (*cvrp.Instance, error) {
	if path != "" {
		return cvrp.ReadFile(path)
	}
	if random == "" {
		return nil, fmt.Errorf("нужен -instance или -random")
	}
	c, err := bench.RandomCase(random, seed)
	if err != nil {
		return nil, err
	}
	return c.Instance, nil
}

func solverFactory(algorithm string, pop, gens int, pc, pm float64) (func(seed int64) opt.Optimizer, error) {
	switch strings.ToLower(algorithm) {
	case "nsga2":
		cfg := nsga2.Config{Population: pop, Generations: gens, CrossoverRate: pc, MutationRate: pm}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return func(seed int64) opt.Optimizer {
			s, _ := nsga2.New(cfg, rand.New(rand.NewSource(seed)))
			return s
		}, nil
	case "spea2":
		cfg := spea2.Config{Population: pop, Generations: gens, CrossoverRate: pc, MutationRate: pm}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return func(seed int64) opt.Optimizer {
			s, _ := spea2.New(cfg, rand.New(rand.NewSource(seed)))
			return s
		}, nil
	}
	return nil, fmt.Errorf("неизвестный алгоритм %q; доступные: nsga2, spea2", algorithm)
}
