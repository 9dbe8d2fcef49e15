package cvrp_test

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"moVRP/internal/cvrp"
)

// lineInstance: depot (0,0), customers 1..4 at (1,0),(2,0),(0,1),(0,2), demand 1, capacity 2.
func lineInstance(t *testing.T) *cvrp.Instance {
	t.Helper()
	inst, err := cvrp.NewInstance("line", cvrp.Point{}, 2, map[int]cvrp.Customer{
		1: {Point: cvrp.Point{X: 1, Y: 0}, Demand: 1},
		2: {Point: cvrp.Point{X: 2, Y: 0}, Demand: 1},
		3: {Point: cvrp.Point{X: 0, Y: 1}, Demand: 1},
		4: {Point: cvrp.Point{X: 0, Y: 2}, Demand: 1},
	})
	require.NoError(t, err)
	return inst
}

func TestNewSolution_Objectives(t *testing.T) {
	inst := lineInstance(t)

	s, err := cvrp.NewSolution([][]int{{0, 1, 2, 0}, {0, 3, 4, 0}}, inst)
	require.NoError(t, err)

	require.Equal(t, [][]int{{1, 2}, {3, 4}}, s.Routes)
	require.InDelta(t, 8.0, s.TotalDistance, 1e-12)
	require.InDelta(t, 4.0, s.RouteBalance, 1e-12)
	require.True(t, s.IsFeasible())
	require.Equal(t, [2]float64{8, 4}, s.Objectives())
}

func TestNewSolution_BalanceIsLongestRoute(t *testing.T) {
	inst := lineInstance(t)

	s, err := cvrp.NewSolution([][]int{{1}, {2, 3, 4}}, inst)
	require.NoError(t, err)

	// 0->2->3->4->0 = 2 + sqrt(5) + 1 + 2
	long := 5 + math.Sqrt(5)
	require.InDelta(t, 2+long, s.TotalDistance, 1e-12)
	require.InDelta(t, long, s.RouteBalance, 1e-12)
	require.False(t, s.IsFeasible(), "load 3 exceeds capacity 2")
}

func TestNewSolution_InvalidRoute(t *testing.T) {
	inst := lineInstance(t)

	_, err := cvrp.NewSolution([][]int{{1, 2}, {3, 99}}, inst)
	require.ErrorIs(t, err, cvrp.ErrInvalidRoute)

	_, err = cvrp.NewSolution([][]int{{1, 2}, {3, 3, 4}}, inst)
	require.ErrorIs(t, err, cvrp.ErrInvalidRoute)

	_, err = cvrp.NewSolution([][]int{{1, 2}, {3}}, inst)
	require.ErrorIs(t, err, cvrp.ErrInvalidRoute)
}

func TestNewSolution_SingleCustomerAndEmptyRoutes(t *testing.T) {
	inst, err := cvrp.NewInstance("one", cvrp.Point{X: 3, Y: 4}, 5, map[int]cvrp.Customer{
		7: {Point: cvrp.Point{X: 3, Y: 4}, Demand: 5},
	})
	require.NoError(t, err)

	s, err := cvrp.NewSolution([][]int{{0, 0}, {7}}, inst)
	require.NoError(t, err)
	require.Zero(t, s.TotalDistance)
	require.Zero(t, s.RouteBalance)
	require.True(t, s.IsFeasible())
}

func TestRouteInfo(t *testing.T) {
	inst := lineInstance(t)
	s, err := cvrp.NewSolution([][]int{{2, 1}, {4}, {3}}, inst)
	require.NoError(t, err)

	info := s.RouteInfo()
	require.Len(t, info, 3)
	require.Equal(t, cvrp.RouteInfo{Route: 1, Customers: []int{2, 1}, Load: 2, Distance: 4}, info[0])
	require.Equal(t, 2, info[1].Route)
	require.Equal(t, 1, info[2].Load)
	require.InDelta(t, 2.0, info[2].Distance, 1e-12)
}

func TestEvaluator_CountsEvaluations(t *testing.T) {
	inst := lineInstance(t)
	ev, err := cvrp.NewEvaluator(inst)
	require.NoError(t, err)

	_, err = ev.Evaluate([][]int{{1, 2, 3, 4}})
	require.NoError(t, err)
	_ = ev.MustEvaluate([][]int{{1}, {2}, {3}, {4}})
	_, err = ev.Evaluate([][]int{{1}})
	require.Error(t, err)

	require.Equal(t, 2, ev.Evaluations())
	require.Panics(t, func() { ev.MustEvaluate([][]int{{5}}) })
}

func TestInstance_Validate(t *testing.T) {
	cases := map[string]*cvrp.Instance{
		"nil":          nil,
		"no capacity":  {Capacity: 0, Customers: map[int]cvrp.Customer{1: {Demand: 1}}},
		"no customers": {Capacity: 3},
		"depot id":     {Capacity: 3, Customers: map[int]cvrp.Customer{0: {Demand: 1}}},
		"big demand":   {Capacity: 3, Customers: map[int]cvrp.Customer{1: {Demand: 4}}},
	}
	for name, inst := range cases {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, inst.Validate(), cvrp.ErrInvalidInstance)
		})
	}
}

func TestSplitTour_Greedy(t *testing.T) {
	inst := lineInstance(t)

	routes := cvrp.SplitTour([]int{3, 1, 4, 2}, inst)
	require.Equal(t, [][]int{{3, 1}, {4, 2}}, routes)
	require.Empty(t, cvrp.SplitTour(nil, inst))
}

func TestSplitTour_RoundTripAndFeasible(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	inst := cvrp.RandomInstance(40, 30, 12, rng)
	ids := inst.IDs()

	for trial := 0; trial < 200; trial++ {
		tour := append([]int(nil), ids...)
		rng.Shuffle(len(tour), func(i, j int) { tour[i], tour[j] = tour[j], tour[i] })

		routes := cvrp.SplitTour(tour, inst)
		require.Equal(t, tour, cvrp.RoutesToTour(routes))

		for _, r := range routes {
			require.NotEmpty(t, r)
			load := 0
			for _, id := range r {
				load += inst.Demand(id)
			}
			require.LessOrEqual(t, load, inst.Capacity)
		}

		s, err := cvrp.NewSolution(routes, inst)
		require.NoError(t, err)
		require.True(t, s.IsFeasible())
	}
}

func TestRoutesToTour_DropsDepotMarkers(t *testing.T) {
	require.Equal(t, []int{5, 2, 9}, cvrp.RoutesToTour([][]int{{0, 5, 2, 0}, {0, 0}, {0, 9, 0}}))
}

const sampleVRP = `NAME : A-n5-k2
COMMENT : (toy, No of trucks: 2)
TYPE : CVRP
DIMENSION : 5
EDGE_WEIGHT_TYPE : EUC_2D
CAPACITY : 10
NODE_COORD_SECTION
 1 50 50
 2 10 10
 3 20 80
 4 90 40
 5 60 60
DEMAND_SECTION
1 0
2 4
3 7
4 3
5 6
DEPOT_SECTION
 1
 -1
EOF
`

func TestParse(t *testing.T) {
	inst, err := cvrp.Parse(strings.NewReader(sampleVRP))
	require.NoError(t, err)

	require.Equal(t, "A-n5-k2", inst.Name)
	require.Equal(t, 10, inst.Capacity)
	require.Equal(t, cvrp.Point{X: 50, Y: 50}, inst.Depot)
	require.Equal(t, []int{2, 3, 4, 5}, inst.IDs())
	require.Equal(t, cvrp.Customer{Point: cvrp.Point{X: 20, Y: 80}, Demand: 7}, inst.Customers[3])
}

func TestParse_Errors(t *testing.T) {
	_, err := cvrp.Parse(strings.NewReader("DIMENSION : 2\nCAPACITY : 5\nNODE_COORD_SECTION\n1 0 0\n2 1 1\nDEMAND_SECTION\n1 0\n"))
	require.ErrorIs(t, err, cvrp.ErrInvalidInstance)

	_, err = cvrp.Parse(strings.NewReader("CAPACITY : x\n"))
	require.ErrorIs(t, err, cvrp.ErrInvalidInstance)

	_, err = cvrp.ReadFile("testdata/does-not-exist.vrp")
	require.Error(t, err)
}
