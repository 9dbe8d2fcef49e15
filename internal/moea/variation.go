package moea

import (
	"errors"
	"fmt"
	"math/rand"

	"moVRP/internal/cvrp"
)

var ErrPopulationSize = errors.New("population size invariant violated")

// Variation holds the probabilities of the tournament → OX → swap → split pipeline.
type Variation struct {
	CrossoverRate float64
	MutationRate  float64
}

// Offspring breeds n children from parents. better(i, j) decides binary tournaments
// between parents[i] and parents[j]. Each child is decoded with SplitTour and
// evaluated through ev, so the run's evaluation counter sees every child.
func (v Variation) Offspring(
	parents []*cvrp.Solution,
	n int,
	better func(i, j int) bool,
	ev *cvrp.Evaluator,
	rng *rand.Rand,
) []*cvrp.Solution {
	children := make([]*cvrp.Solution, 0, n)
	for len(children) < n {
		p1 := parents[BinaryTournament(len(parents), better, rng)]
		p2 := parents[BinaryTournament(len(parents), better, rng)]

		tour1 := cvrp.RoutesToTour(p1.Routes)
		var child []int
		if rng.Float64() < v.CrossoverRate {
			child = OrderCrossover(tour1, cvrp.RoutesToTour(p2.Routes), rng)
		} else {
			child = tour1
		}
		child = MutateSwap(child, v.MutationRate, rng)

		children = append(children, ev.MustEvaluate(cvrp.SplitTour(child, ev.Instance())))
	}
	return children
}

// InitialPopulation evaluates size randomized greedy partitions.
func InitialPopulation(size int, ev *cvrp.Evaluator, rng *rand.Rand) []*cvrp.Solution {
	pop := make([]*cvrp.Solution, size)
	for i := range pop {
		pop[i] = ev.MustEvaluate(RandomGreedyRoutes(ev.Instance(), rng))
	}
	return pop
}

// MustSize panics when a selection step produced the wrong number of members.
func MustSize(stage string, got, want int) {
	if got != want {
		panic(fmt.Errorf("%w: %s produced %d members, want %d", ErrPopulationSize, stage, got, want))
	}
}

// Points extracts the objective tuples of sols.
func Points(sols []*cvrp.Solution) [][2]float64 {
	pts := make([][2]float64, len(sols))
	for i, s := range sols {
		pts[i] = s.Objectives()
	}
	return pts
}

// ParetoFront returns the rank-1 members of sols in input order.
func ParetoFront(sols []*cvrp.Solution) []*cvrp.Solution {
	fronts, _ := FastNonDominatedSort(Points(sols))
	if len(fronts) == 0 {
		return []*cvrp.Solution{}
	}
	out := make([]*cvrp.Solution, 0, len(fronts[0]))
	for _, i := range fronts[0] {
		out = append(out, sols[i])
	}
	return out
}
