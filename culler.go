package genetic_queens

import (
	log "github.com/sirupsen/logrus"
)

// Culler ranks a population by fitness and drops the individuals beyond
// the carrying capacity.
type Culler struct {
	CarryingCapacity int
}

func NewCuller(carryingCapacity int) *Culler {
	return &Culler{CarryingCapacity: carryingCapacity}
}

// Cull sorts p best-first, trims it from the worst end and refreshes its
// total. Returns the number of individuals removed.
func (c *Culler) Cull(p *Population) int {
	p.Sort()
	size := len(p.Individuals)
	if size <= c.CarryingCapacity {
		p.Recount()
		return 0
	}

	for i := c.CarryingCapacity; i < size; i++ {
		p.Individuals[i] = nil
	}
	p.Individuals = p.Individuals[:c.CarryingCapacity]
	p.Recount()

	culled := size - c.CarryingCapacity
	log.WithFields(log.Fields{
		"culled":   culled,
		"size":     size,
		"capacity": c.CarryingCapacity,
	}).Trace("Competitive cull")
	return culled
}
