package genetic_queens

import (
	"github.com/xrash/smetrics"
	"gonum.org/v1/gonum/stat"
)

// GenerationStats is the snapshot reported once per generation.
type GenerationStats struct {
	Generation     int
	PopulationSize int
	TotalFitness   int
	MeanFitness    float64
	StdDev         float64
	Infeasible     int
	// Diversity is the mean fraction of genes that differ from the best
	// genotype, in [0, 1].
	Diversity float64
	Best      *Individual
}

func (gs *GenerationStats) BestFitness() Fitness {
	if gs.Best == nil {
		return InfeasibleFitness
	}
	return gs.Best.Fitness
}

// ComputeStats aggregates a sorted population. Best is a clone so later
// generations cannot alter it.
func ComputeStats(generation int, p *Population) *GenerationStats {
	gs := &GenerationStats{
		Generation:     generation,
		PopulationSize: p.Size(),
		TotalFitness:   p.TotalFitness,
		MeanFitness:    p.MeanFitness(),
		Infeasible:     p.InfeasibleCount(),
	}
	if p.Size() == 0 {
		return gs
	}

	best := p.Best()
	gs.Best = best.Clone()

	var values []float64
	for _, u := range p.Individuals {
		if !u.Fitness.Infeasible {
			values = append(values, float64(u.Fitness.Value))
		}
	}
	if len(values) > 1 {
		_, gs.StdDev = stat.MeanStdDev(values, nil)
	}

	gs.Diversity = diversity(best.Genotype, p.Individuals)
	return gs
}

func diversity(best Genotype, units []*Individual) float64 {
	if len(best) == 0 || len(units) == 0 {
		return 0
	}
	key := best.Key()
	total := 0
	for _, u := range units {
		d, err := smetrics.Hamming(key, u.Genotype.Key())
		if err != nil {
			continue
		}
		total += d
	}
	return float64(total) / float64(len(units)*len(best))
}
