package cvrp

import "fmt"

// Evaluator builds solutions for one run and counts objective evaluations.
// It is not safe for concurrent use.
type Evaluator struct {
	inst  *Instance
	evals int
}

func NewEvaluator(inst *Instance) (*Evaluator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{inst: inst}, nil
}

func (e *Evaluator) Evaluate(routes [][]int) (*Solution, error) {
	if e == nil || e.inst == nil {
		return nil, fmt.Errorf("nil evaluator")
	}
	s, err := NewSolution(routes, e.inst)
	if err != nil {
		return nil, err
	}
	e.evals++
	return s, nil
}

// MustEvaluate panics on ErrInvalidRoute: a decoder that loses or invents
// customers is a programming error.
func (e *Evaluator) MustEvaluate(routes [][]int) *Solution {
	s, err := e.Evaluate(routes)
	if err != nil {
		panic(err)
	}
	return s
}

func (e *Evaluator) Evaluations() int {
	return e.evals
}

func (e *Evaluator) Instance() *Instance {
	return e.inst
}
