package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParamSet is one named engine configuration of an experiment.
type ParamSet struct {
	Name        string  `yaml:"name"`
	Population  int     `yaml:"pop_size"`
	Generations int     `yaml:"generations"`
	Crossover   float64 `yaml:"crossover_prob"`
	Mutation    float64 `yaml:"mutation_prob"`
}

type Experiment struct {
	Runs         int        `yaml:"runs"`
	Seed         int64      `yaml:"seed"`
	InstanceSeed int64      `yaml:"instance_seed"`
	Parallel     int        `yaml:"parallel"`
	Algos        []string   `yaml:"algos"`
	Instances    []string   `yaml:"instances"`
	Random       []string   `yaml:"random"`
	ParamSets    []ParamSet `yaml:"param_sets"`
}

func DefaultParamSets() []ParamSet {
	return []ParamSet{
		{Name: "default", Population: 100, Generations: 500, Crossover: 0.7, Mutation: 0.2},
		{Name: "high_mutation", Population: 100, Generations: 500, Crossover: 0.7, Mutation: 0.4},
		{Name: "large_population", Population: 200, Generations: 250, Crossover: 0.7, Mutation: 0.2},
	}
}

func DefaultExperiment() Experiment {
	return Experiment{
		Runs:         5,
		Seed:         1000,
		InstanceSeed: 777,
		Algos:        []string{"NSGA2", "SPEA2"},
		Random:       []string{"30x50"},
		ParamSets:    DefaultParamSets(),
	}
}

// LoadExperiment reads a YAML experiment file; fields it omits keep DefaultExperiment values.
// Random instances are only defaulted when the file names no instances at all.
func LoadExperiment(path string) (Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Experiment{}, fmt.Errorf("load experiment: %w", err)
	}
	return ParseExperiment(data)
}

func ParseExperiment(data []byte) (Experiment, error) {
	def := DefaultExperiment()
	exp := def
	exp.Random, exp.ParamSets = nil, nil
	if err := yaml.Unmarshal(data, &exp); err != nil {
		return Experiment{}, fmt.Errorf("parse experiment: %w", err)
	}
	if len(exp.Instances) == 0 && len(exp.Random) == 0 {
		exp.Random = def.Random
	}
	if len(exp.ParamSets) == 0 {
		exp.ParamSets = def.ParamSets
	}
	if err := exp.Validate(); err != nil {
		return Experiment{}, err
	}
	return exp, nil
}

func (e Experiment) Validate() error {
	if e.Runs <= 0 {
		return fmt.Errorf("experiment: runs must be > 0 (got %d)", e.Runs)
	}
	if e.Parallel < 0 {
		return fmt.Errorf("experiment: parallel must be >= 0 (got %d)", e.Parallel)
	}
	if len(e.Algos) == 0 {
		return fmt.Errorf("experiment: no algorithms")
	}
	if len(e.Instances) == 0 && len(e.Random) == 0 {
		return fmt.Errorf("experiment: no instances")
	}
	seen := make(map[string]struct{}, len(e.ParamSets))
	for _, p := range e.ParamSets {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return fmt.Errorf("experiment: parameter set without name")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("experiment: duplicate parameter set %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// Select returns the parameter sets named in names, in that order; empty names selects all.
func (e Experiment) Select(names []string) ([]ParamSet, error) {
	if len(names) == 0 {
		return e.ParamSets, nil
	}
	out := make([]ParamSet, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		found := false
		for _, p := range e.ParamSets {
			if p.Name == n {
				out = append(out, p)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("experiment: unknown parameter set %q", n)
		}
	}
	return out, nil
}
