package cvrp

import (
	"errors"
	"fmt"
)

var ErrInvalidRoute = errors.New("invalid route")

// Solution is an immutable partition of the customers into depot-rooted routes.
// Routes hold customer ids only; the depot is implied at both ends of every route.
type Solution struct {
	Routes        [][]int
	TotalDistance float64
	// RouteBalance is the longest single route (min-max fairness).
	RouteBalance float64

	inst *Instance
}

// NewSolution copies routes, strips depot markers and evaluates both objectives.
// Every customer of inst must appear exactly once.
func NewSolution(routes [][]int, inst *Instance) (*Solution, error) {
	if inst == nil {
		return nil, fmt.Errorf("%w: instance is nil", ErrInvalidRoute)
	}

	seen := make(map[int]struct{}, len(inst.Customers))
	own := make([][]int, 0, len(routes))
	for ri, r := range routes {
		route := make([]int, 0, len(r))
		for _, id := range r {
			if id == DepotID {
				continue
			}
			if _, ok := inst.Customers[id]; !ok {
				return nil, fmt.Errorf("%w: route %d references unknown customer %d", ErrInvalidRoute, ri+1, id)
			}
			if _, dup := seen[id]; dup {
				return nil, fmt.Errorf("%w: customer %d visited more than once", ErrInvalidRoute, id)
			}
			seen[id] = struct{}{}
			route = append(route, id)
		}
		own = append(own, route)
	}
	if len(seen) != len(inst.Customers) {
		return nil, fmt.Errorf("%w: %d of %d customers routed", ErrInvalidRoute, len(seen), len(inst.Customers))
	}

	s := &Solution{Routes: own, inst: inst}
	for _, r := range own {
		d := s.routeDistance(r)
		s.TotalDistance += d
		if d > s.RouteBalance {
			s.RouteBalance = d
		}
	}
	return s, nil
}

func (s *Solution) routeDistance(route []int) float64 {
	if len(route) == 0 {
		return 0
	}
	dist := 0.0
	prev := s.inst.Depot
	for _, id := range route {
		p := s.inst.Customers[id].Point
		dist += prev.Dist(p)
		prev = p
	}
	return dist + prev.Dist(s.inst.Depot)
}

func (s *Solution) routeLoad(route []int) int {
	load := 0
	for _, id := range route {
		load += s.inst.Customers[id].Demand
	}
	return load
}

// Objectives returns (total distance, route balance), both minimized.
func (s *Solution) Objectives() [2]float64 {
	return [2]float64{s.TotalDistance, s.RouteBalance}
}

func (s *Solution) IsFeasible() bool {
	for _, r := range s.Routes {
		if s.routeLoad(r) > s.inst.Capacity {
			return false
		}
	}
	return true
}

type RouteInfo struct {
	Route     int
	Customers []int
	Load      int
	Distance  float64
}

func (s *Solution) RouteInfo() []RouteInfo {
	info := make([]RouteInfo, len(s.Routes))
	for i, r := range s.Routes {
		info[i] = RouteInfo{
			Route:     i + 1,
			Customers: append([]int(nil), r...),
			Load:      s.routeLoad(r),
			Distance:  s.routeDistance(r),
		}
	}
	return info
}

func (s *Solution) String() string {
	return fmt.Sprintf("Solution(distance=%.2f, balance=%.2f, routes=%d, feasible=%t)",
		s.TotalDistance, s.RouteBalance, len(s.Routes), s.IsFeasible())
}
