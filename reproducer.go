package genetic_queens

import (
	"fmt"
)

// Reproducer builds the next generation: elites are carried over unchanged,
// then pairs of parents produce a child and its mirror until the target
// size is reached. Each child mutates independently with probability
// MutationRate/100.
type Reproducer struct {
	Selector     Selector
	CrossoverCut int
	MutationRate int
	Elitism      int
	objective    Objective
}

func NewReproducer(selector Selector, objective Objective, crossoverCut, mutationRate, elitism int) *Reproducer {
	return &Reproducer{
		Selector:     selector,
		CrossoverCut: crossoverCut,
		MutationRate: mutationRate,
		Elitism:      elitism,
		objective:    objective,
	}
}

// Reproduce returns an unsorted next generation. It may overshoot the size
// of current by one; callers cull it back.
func (r *Reproducer) Reproduce(current *Population, rng Rand) (*Population, error) {
	target := current.Size()
	next := make([]*Individual, 0, target+1)

	elites := r.Elitism
	if elites > target {
		elites = target
	}
	for i := 0; i < elites; i++ {
		next = append(next, current.Individuals[i].Clone())
	}

	for len(next) < target {
		a, err := r.Selector.Select(current, rng)
		if err != nil {
			return nil, fmt.Errorf("failed to select first parent: %w", err)
		}
		b, err := r.Selector.Select(current, rng)
		if err != nil {
			return nil, fmt.Errorf("failed to select second parent: %w", err)
		}

		next = append(next, r.breed(a.Genotype, b.Genotype, rng))
		next = append(next, r.breed(b.Genotype, a.Genotype, rng))
	}

	return &Population{Individuals: next}, nil
}

func (r *Reproducer) breed(a, b Genotype, rng Rand) *Individual {
	child := NewOffspring(a, b, r.CrossoverCut, r.objective)
	if rng.Intn(100) < r.MutationRate {
		child.Mutate(rng)
	}
	return child
}
