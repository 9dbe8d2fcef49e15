package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"

	"github.com/google/uuid"

	"moVRP/internal/bench"
	"moVRP/internal/config"
	"moVRP/internal/cvrp"
	"moVRP/internal/nsga2"
	"moVRP/internal/opt"
	"moVRP/internal/spea2"
	"moVRP/internal/store"
	"moVRP/internal/telemetry"
)

// Фабрики

func newNSGA2Factory(cfg nsga2.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := nsga2.New(cfg, rand.New(rand.NewSource(seed)))
		return solver
	}
}

func newSPEA2Factory(cfg spea2.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := spea2.New(cfg, rand.New(rand.NewSource(seed)))
		return solver
	}
}

func main() {
	if _, err := config.LoadEnv(); err != nil {
		log.Printf("Не удалось прочитать .env: %v", err)
	}

	// CLI флаги; значения из YAML-файла эксперимента переопределяются только явно заданными флагами
	var (
		expPath      = flag.String("config", "", "YAML-файл эксперимента (экземпляры, алгоритмы, наборы параметров)")
		out          = flag.String("out", "artifacts/results.csv", "путь к выходному CSV-файлу")
		coverageOut  = flag.String("coverage_out", "artifacts/coverage.csv", "CSV с попарным покрытием C(A,B); пусто — не писать")
		metricsOut   = flag.String("metrics", config.Get("METRICS_TEXTFILE", ""), "textfile для метрик Prometheus; пусто — не писать")
		dbURL        = flag.String("db", config.Get("DATABASE_URL", ""), "строка подключения Postgres; пусто — без сохранения")
		initSchema   = flag.Bool("init_schema", true, "создать таблицы перед сохранением результатов")
		pairs        = flag.String("pairs", "30x50", "случайные экземпляры: количество клиентов X вместимость (через запятую)")
		instances    = flag.String("instances", "", "файлы экземпляров CVRPLIB (через запятую)")
		algos        = flag.String("algos", "NSGA2,SPEA2", "список алгоритмов: NSGA2, SPEA2 (через запятую)")
		params       = flag.String("params", "", "наборы параметров (через запятую); пусто — все")
		runs         = flag.Int("runs", 5, "количество запусков каждого алгоритма (с разными сидами)")
		baseSeed     = flag.Int64("seed", 1000, "базовый сид для запусков алгоритмов")
		instanceSeed = flag.Int64("instance_seed", 777, "базовый сид для генерации экземпляров задачи")
		parallel     = flag.Int("parallel", 0, "число одновременных запусков; 0 — все запуски сразу")
		perRunTO     = flag.Duration("per_run_timeout", 0, "таймаут одного запуска; 0 — без ограничения")

		// --- Собственный набор параметров (используется, если pop > 0) ---
		pop = flag.Int("pop", 0, "размер популяции (и архива)")
		gen = flag.Int("gen", 500, "количество поколений")
		cx  = flag.Float64("cx", 0.7, "вероятность применения кроссовера")
		mut = flag.Float64("mut", 0.2, "вероятность мутации")
	)
	flag.Parse()

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	exp := config.DefaultExperiment()
	if *expPath != "" {
		var err error
		if exp, err = config.LoadExperiment(*expPath); err != nil {
			fmt.Fprintln(os.Stderr, "Конфликт:", err)
			os.Exit(2)
		}
	}
	if set["runs"] || *expPath == "" {
		exp.Runs = *runs
	}
	if set["seed"] || *expPath == "" {
		exp.Seed = *baseSeed
	}
	if set["instance_seed"] || *expPath == "" {
		exp.InstanceSeed = *instanceSeed
	}
	if set["parallel"] || *expPath == "" {
		exp.Parallel = *parallel
	}
	if set["algos"] || *expPath == "" {
		exp.Algos = splitCSV(*algos)
	}
	if set["pairs"] || set["instances"] || *expPath == "" {
		exp.Instances = splitCSV(*instances)
		exp.Random = nil
		if set["pairs"] || !set["instances"] {
			exp.Random = splitCSV(*pairs)
		}
	}
	if *pop > 0 {
		exp.ParamSets = []config.ParamSet{{Name: "custom", Population: *pop, Generations: *gen, Crossover: *cx, Mutation: *mut}}
	}
	if err := exp.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		os.Exit(2)
	}

	paramSets, err := exp.Select(splitCSV(*params))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		os.Exit(2)
	}

	cases, err := loadCases(exp)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		os.Exit(2)
	}

	selected, err := buildAlgorithms(exp.Algos, paramSets)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации:", err)
		os.Exit(2)
	}

	metrics := telemetry.New()
	runner := bench.Runner{
		Runs:          exp.Runs,
		BaseSeed:      exp.Seed,
		PerRunTimeout: *perRunTO,
		Parallel:      exp.Parallel,
		Observer:      metrics,
	}

	ctx := context.Background()
	batchID := uuid.New()

	var (
		records  []bench.Record
		coverage []bench.Coverage
		allRuns  []bench.Run
	)
	for _, c := range cases {
		inst := c.Instance
		groups := make([]bench.Group, 0, len(selected))
		for _, a := range selected {
			fmt.Printf("Запущен алгоритм %s [%s]; экземпляр %s, %d клиентов (общее кол-во запусков=%d)...\n",
				a.Name, a.Params, inst.Name, len(inst.Customers), runner.Runs)

			caseRuns, err := runner.RunCase(ctx, c, a)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Ошибка:", err)
				os.Exit(1)
			}
			allRuns = append(allRuns, caseRuns...)
			groups = append(groups, bench.Group{Algo: a.Name, Params: a.Params, Customers: len(inst.Customers), Runs: caseRuns})
		}

		recs, cov := bench.Summarize(inst.Name, groups)
		for _, rec := range recs {
			fmt.Printf("  %s [%s]: HV среднее=%.2f стд=%.2f | IGD среднее=%.4f | фронт=%.1f | вычислений=%.0f | время среднее=%.2fms\n",
				rec.Algo, rec.Params, rec.HVMean, rec.HVStd, rec.IGDMean, rec.FrontSizeMean, rec.EvaluationsMean, rec.TimeMeanMs)
			if rec.Warnings > 0 {
				fmt.Printf("  %s [%s]: запусков с пустым фронтом: %d\n", rec.Algo, rec.Params, rec.Warnings)
			}
		}
		for _, cv := range cov {
			fmt.Printf("  C(%s, %s) = %.3f\n", cv.A, cv.B, cv.Value)
		}
		records = append(records, recs...)
		coverage = append(coverage, cov...)
	}

	if err := bench.WriteCSV(*out, records); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка при записи в CSV:", err)
		os.Exit(1)
	}
	fmt.Println("Saved:", *out)

	if *coverageOut != "" {
		if err := bench.WriteCoverageCSV(*coverageOut, coverage); err != nil {
			fmt.Fprintln(os.Stderr, "Ошибка при записи в CSV:", err)
			os.Exit(1)
		}
		fmt.Println("Saved:", *coverageOut)
	}

	if *metricsOut != "" {
		if err := metrics.WriteTextfile(*metricsOut); err != nil {
			fmt.Fprintln(os.Stderr, "Ошибка:", err)
			os.Exit(1)
		}
		fmt.Println("Saved:", *metricsOut)
	}

	if strings.TrimSpace(*dbURL) != "" {
		if err := persist(ctx, *dbURL, *initSchema, batchID, allRuns, records); err != nil {
			log.Fatal(err)
		}
		log.Printf("batch_id=%s runs=%d saved to postgres", batchID, len(allRuns))
	}
}

func persist(ctx context.Context, url string, withSchema bool, batchID uuid.UUID, runs []bench.Run, records []bench.Record) error {
	db, err := store.Open(url)
	if err != nil {
		return err
	}
	defer db.Close()

	if withSchema {
		if err := store.InitSchema(ctx, db); err != nil {
			return err
		}
	}
	results := store.NewResults(db)
	if err := results.SaveRuns(ctx, batchID, runs); err != nil {
		return err
	}
	return results.SaveSummaries(ctx, batchID, records)
}

// helpers

func buildAlgorithms(names []string, sets []config.ParamSet) ([]bench.Algorithm, error) {
	var out []bench.Algorithm
	for _, p := range sets {
		for _, name := range names {
			name = strings.ToUpper(strings.TrimSpace(name))
			var factory func(seed int64) opt.Optimizer
			switch name {
			case "NSGA2":
				cfg := nsga2.Config{Population: p.Population, Generations: p.Generations, CrossoverRate: p.Crossover, MutationRate: p.Mutation}
				if err := cfg.Validate(); err != nil {
					return nil, fmt.Errorf("%s [%s]: %w", name, p.Name, err)
				}
				factory = newNSGA2Factory(cfg)
			case "SPEA2":
				cfg := spea2.Config{Population: p.Population, Generations: p.Generations, CrossoverRate: p.Crossover, MutationRate: p.Mutation}
				if err := cfg.Validate(); err != nil {
					return nil, fmt.Errorf("%s [%s]: %w", name, p.Name, err)
				}
				factory = newSPEA2Factory(cfg)
			default:
				return nil, fmt.Errorf("алгоритм не предоставлен в программе %q; доступные: NSGA2, SPEA2", name)
			}
			out = append(out, bench.Algorithm{Name: name, Params: p.Name, Factory: factory})
		}
	}
	return out, nil
}

func loadCases(exp config.Experiment) ([]bench.Case, error) {
	cases := make([]bench.Case, 0, len(exp.Instances)+len(exp.Random))
	for _, path := range exp.Instances {
		inst, err := cvrp.ReadFile(path)
		if err != nil {
			return nil, err
		}
		cases = append(cases, bench.Case{Instance: inst})
	}
	for i, p := range exp.Random {
		c, err := bench.RandomCase(p, exp.InstanceSeed+int64(i)*10_000)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
