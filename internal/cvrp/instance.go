package cvrp

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// DepotID is the route marker for the depot. Customer ids are always > DepotID.
const DepotID = 0

var ErrInvalidInstance = errors.New("invalid instance")

type Point struct {
	X, Y float64
}

func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

type Customer struct {
	Point  Point
	Demand int
}

type Instance struct {
	Name      string
	Depot     Point
	Capacity  int
	Customers map[int]Customer
}

func NewInstance(name string, depot Point, capacity int, customers map[int]Customer) (*Instance, error) {
	inst := &Instance{Name: name, Depot: depot, Capacity: capacity, Customers: customers}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return fmt.Errorf("%w: instance is nil", ErrInvalidInstance)
	}
	if inst.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be > 0 (got %d)", ErrInvalidInstance, inst.Capacity)
	}
	if len(inst.Customers) == 0 {
		return fmt.Errorf("%w: no customers", ErrInvalidInstance)
	}
	for id, c := range inst.Customers {
		if id <= DepotID {
			return fmt.Errorf("%w: customer id must be > %d (got %d)", ErrInvalidInstance, DepotID, id)
		}
		if c.Demand < 0 || c.Demand > inst.Capacity {
			return fmt.Errorf("%w: customer %d demand must be in [0,%d] (got %d)", ErrInvalidInstance, id, inst.Capacity, c.Demand)
		}
	}
	return nil
}

// IDs returns customer ids in ascending order.
func (inst *Instance) IDs() []int {
	ids := make([]int, 0, len(inst.Customers))
	for id := range inst.Customers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (inst *Instance) Demand(id int) int {
	return inst.Customers[id].Demand
}

// Coords resolves a node id, substituting the depot for DepotID.
func (inst *Instance) Coords(id int) Point {
	if id == DepotID {
		return inst.Depot
	}
	return inst.Customers[id].Point
}

func (inst *Instance) String() string {
	return fmt.Sprintf("CVRP(%s, %d customers, capacity=%d)", inst.Name, len(inst.Customers), inst.Capacity)
}

// RandomInstance places the depot in the middle of a 100x100 square and scatters
// customers with demands in [1, maxDemand].
func RandomInstance(customers, capacity, maxDemand int, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if maxDemand <= 0 || maxDemand > capacity {
		panic("спрос должен быть в диапазоне [1, capacity]")
	}
	cs := make(map[int]Customer, customers)
	for i := 0; i < customers; i++ {
		cs[i+1] = Customer{
			Point:  Point{X: math.Round(rng.Float64() * 100), Y: math.Round(rng.Float64() * 100)},
			Demand: 1 + rng.Intn(maxDemand),
		}
	}
	name := fmt.Sprintf("rand-n%d-q%d", customers, capacity)
	inst, err := NewInstance(name, Point{X: 50, Y: 50}, capacity, cs)
	if err != nil {
		panic(err)
	}
	return inst
}
