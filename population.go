package genetic_queens

import (
	"sort"
)

// Population is an ordered set of individuals. After Sort, index 0 is the
// best.
type Population struct {
	Individuals  []*Individual
	TotalFitness int
}

// NewRandomPopulation synthesizes size random individuals on an n board,
// sorted best-first.
func NewRandomPopulation(size, n int, objective Objective, rng Rand) *Population {
	units := make([]*Individual, size)
	for i := range units {
		units[i] = NewRandomIndividual(n, objective, rng)
	}
	return NewPopulation(units)
}

func NewPopulation(units []*Individual) *Population {
	p := &Population{Individuals: units}
	p.Sort()
	p.Recount()
	return p
}

// Sort orders best-first. Ties keep insertion order and infeasible
// individuals sink to the end.
func (p *Population) Sort() {
	sort.SliceStable(p.Individuals, func(i, j int) bool {
		return p.Individuals[i].Fitness.Better(p.Individuals[j].Fitness)
	})
}

// Sorted reports whether no individual ranks above its predecessor.
func (p *Population) Sorted() bool {
	for i := 1; i < len(p.Individuals); i++ {
		if p.Individuals[i].Fitness.Better(p.Individuals[i-1].Fitness) {
			return false
		}
	}
	return true
}

// Recount refreshes TotalFitness.
func (p *Population) Recount() {
	p.TotalFitness = 0
	for _, u := range p.Individuals {
		p.TotalFitness += u.Fitness.Weight()
	}
}

func (p *Population) Size() int {
	return len(p.Individuals)
}

func (p *Population) Best() *Individual {
	if len(p.Individuals) == 0 {
		return nil
	}
	return p.Individuals[0]
}

func (p *Population) MeanFitness() float64 {
	if len(p.Individuals) == 0 {
		return 0
	}
	return float64(p.TotalFitness) / float64(len(p.Individuals))
}

func (p *Population) InfeasibleCount() int {
	count := 0
	for _, u := range p.Individuals {
		if u.Fitness.Infeasible {
			count++
		}
	}
	return count
}
