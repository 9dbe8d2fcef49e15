package moea

import (
	"math/rand"

	"moVRP/internal/cvrp"
)

// RandomGreedyRoutes builds a capacity-feasible partition: it keeps choosing uniformly
// among the unrouted customers that still fit the open route, and closes the route
// when none fit. Candidates are scanned in ascending id order so that a seed fully
// determines the result.
func RandomGreedyRoutes(inst *cvrp.Instance, rng *rand.Rand) [][]int {
	unrouted := inst.IDs()
	candidates := make([]int, 0, len(unrouted))

	var routes [][]int
	var current []int
	load := 0
	for len(unrouted) > 0 {
		candidates = candidates[:0]
		for i, id := range unrouted {
			if load+inst.Demand(id) <= inst.Capacity {
				candidates = append(candidates, i)
			}
		}
		if len(candidates) == 0 {
			routes = append(routes, current)
			current, load = nil, 0
			continue
		}

		pos := candidates[rng.Intn(len(candidates))]
		id := unrouted[pos]
		current = append(current, id)
		load += inst.Demand(id)
		unrouted = append(unrouted[:pos], unrouted[pos+1:]...)
	}
	return append(routes, current)
}

// OrderCrossover (OX) copies p1[a..b] in place and fills the remaining slots left to
// right with the genes of p2 in p2 order. p1 and p2 must be permutations
// of the same gene set.
func OrderCrossover(p1, p2 []int, rng *rand.Rand) []int {
	n := len(p1)
	child := make([]int, n)
	if n < 2 {
		copy(child, p1)
		return child
	}

	a, b := distinctPair(n, rng)
	if a > b {
		a, b = b, a
	}

	placed := make(map[int]struct{}, b-a+1)
	for i := a; i <= b; i++ {
		child[i] = p1[i]
		placed[p1[i]] = struct{}{}
	}

	pos := 0
	for _, gene := range p2 {
		if _, ok := placed[gene]; ok {
			continue
		}
		if pos == a {
			pos = b + 1
		}
		child[pos] = gene
		pos++
	}
	return child
}

// MutateSwap returns a copy of tour in which, with probability pm, two distinct
// positions are swapped.
func MutateSwap(tour []int, pm float64, rng *rand.Rand) []int {
	out := append([]int(nil), tour...)
	if len(out) >= 2 && rng.Float64() < pm {
		i, j := distinctPair(len(out), rng)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// BinaryTournament samples two distinct individuals out of n and returns the
// index preferred by better(i, j) (true when i beats j).
func BinaryTournament(n int, better func(i, j int) bool, rng *rand.Rand) int {
	if n == 1 {
		return 0
	}
	i, j := distinctPair(n, rng)
	if better(j, i) {
		return j
	}
	return i
}

func distinctPair(n int, rng *rand.Rand) (int, int) {
	i := rng.Intn(n)
	j := rng.Intn(n - 1)
	if j >= i {
		j++
	}
	return i, j
}
