package cvrp

// RoutesToTour flattens routes into the giant tour, dropping depot markers.
func RoutesToTour(routes [][]int) []int {
	n := 0
	for _, r := range routes {
		n += len(r)
	}
	tour := make([]int, 0, n)
	for _, r := range routes {
		for _, id := range r {
			if id != DepotID {
				tour = append(tour, id)
			}
		}
	}
	return tour
}

// SplitTour cuts a giant tour into capacity-feasible routes in a single greedy
// pass. Customer order is preserved, so RoutesToTour(SplitTour(t)) == t.
func SplitTour(tour []int, inst *Instance) [][]int {
	var routes [][]int
	var current []int
	load := 0

	for _, id := range tour {
		d := inst.Demand(id)
		if load+d > inst.Capacity && len(current) > 0 {
			routes = append(routes, current)
			current, load = nil, 0
		}
		current = append(current, id)
		load += d
	}
	if len(current) > 0 {
		routes = append(routes, current)
	}
	return routes
}
