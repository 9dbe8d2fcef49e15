package cvrp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadFile parses a CVRPLIB (TSPLIB-style) instance file.
func ReadFile(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read instance %q: %w", path, err)
	}
	defer f.Close()

	inst, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("read instance %q: %w", path, err)
	}
	return inst, nil
}

// Parse reads NAME, DIMENSION and CAPACITY headers and the NODE_COORD, DEMAND and
// DEPOT sections. The depot is the first node of DEPOT_SECTION (node 1 when absent);
// every other node with both coordinates and demand becomes a customer.
func Parse(r io.Reader) (*Instance, error) {
	var (
		name      string
		dimension int
		capacity  int
		section   string
		coords    = map[int]Point{}
		demands   = map[int]int{}
		depot     = -1
	)

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		if key, val, ok := strings.Cut(line, ":"); ok {
			key = strings.TrimSpace(key)
			val = strings.TrimSpace(val)
			switch key {
			case "NAME":
				name = val
				continue
			case "DIMENSION", "CAPACITY":
				v, err := strconv.Atoi(val)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %s: %v", ErrInvalidInstance, lineNo, key, err)
				}
				if key == "DIMENSION" {
					dimension = v
				} else {
					capacity = v
				}
				continue
			case "COMMENT", "TYPE", "EDGE_WEIGHT_TYPE":
				continue
			}
		}

		switch {
		case strings.HasPrefix(line, "NODE_COORD_SECTION"):
			section = "coords"
			continue
		case strings.HasPrefix(line, "DEMAND_SECTION"):
			section = "demand"
			continue
		case strings.HasPrefix(line, "DEPOT_SECTION"):
			section = "depot"
			continue
		case strings.HasPrefix(line, "EOF"):
			section = ""
			continue
		}

		fields := strings.Fields(line)
		switch section {
		case "coords":
			if len(fields) < 3 {
				return nil, fmt.Errorf("%w: line %d: want 'id x y'", ErrInvalidInstance, lineNo)
			}
			id, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: node id: %v", ErrInvalidInstance, lineNo, err)
			}
			x, errX := strconv.ParseFloat(fields[1], 64)
			y, errY := strconv.ParseFloat(fields[2], 64)
			if errX != nil || errY != nil {
				return nil, fmt.Errorf("%w: line %d: bad coordinates", ErrInvalidInstance, lineNo)
			}
			coords[id] = Point{X: x, Y: y}
		case "demand":
			if len(fields) < 2 {
				return nil, fmt.Errorf("%w: line %d: want 'id demand'", ErrInvalidInstance, lineNo)
			}
			id, errID := strconv.Atoi(fields[0])
			d, errD := strconv.Atoi(fields[1])
			if errID != nil || errD != nil {
				return nil, fmt.Errorf("%w: line %d: bad demand entry", ErrInvalidInstance, lineNo)
			}
			demands[id] = d
		case "depot":
			id, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: depot id: %v", ErrInvalidInstance, lineNo, err)
			}
			if id > 0 && depot < 0 {
				depot = id
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if depot < 0 {
		depot = 1
	}
	depotCoords, ok := coords[depot]
	if !ok {
		return nil, fmt.Errorf("%w: depot node %d has no coordinates", ErrInvalidInstance, depot)
	}
	if dimension > 0 && len(coords) != dimension {
		return nil, fmt.Errorf("%w: DIMENSION=%d but %d nodes have coordinates", ErrInvalidInstance, dimension, len(coords))
	}

	customers := make(map[int]Customer, len(coords))
	for id, p := range coords {
		if id == depot {
			continue
		}
		d, ok := demands[id]
		if !ok {
			return nil, fmt.Errorf("%w: node %d has no demand", ErrInvalidInstance, id)
		}
		customers[id] = Customer{Point: p, Demand: d}
	}

	return NewInstance(name, depotCoords, capacity, customers)
}
