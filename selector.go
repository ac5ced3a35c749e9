package genetic_queens

import (
	"fmt"
	"strings"
)

type SelectorConfig struct {
	Method SelectionMethod `toml:"method"`
	// FitterWins flips tournament polarity so the better competitor is
	// returned. The default returns the lower-or-equal one.
	FitterWins bool `toml:"tournament_fitter_wins"`
}

// Selector picks one parent from the current population.
type Selector interface {
	Select(p *Population, rng Rand) (*Individual, error)
}

// ParseSelectionMethod accepts the English tokens and their Portuguese
// originals ("roleta", "torneio").
func ParseSelectionMethod(s string) (SelectionMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "roulette", "roleta":
		return Roulette, nil
	case "tournament", "torneio":
		return Tournament, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSelection, s)
}

func NewSelector(config *SelectorConfig) (Selector, error) {
	method, err := ParseSelectionMethod(string(config.Method))
	if err != nil {
		return nil, err
	}
	if method == Roulette {
		return RouletteSelector{}, nil
	}
	return TournamentSelector{FitterWins: config.FitterWins}, nil
}

// RouletteSelector samples proportionally to fitness weight.
type RouletteSelector struct{}

func (RouletteSelector) Select(p *Population, rng Rand) (*Individual, error) {
	if p.TotalFitness <= 0 || len(p.Individuals) == 0 {
		return nil, fmt.Errorf("%w: total=%d size=%d", ErrDegenerateSelection, p.TotalFitness, len(p.Individuals))
	}
	value := rng.Intn(p.TotalFitness)
	for _, u := range p.Individuals {
		value -= u.Fitness.Weight()
		if value <= 0 {
			return u, nil
		}
	}
	// TotalFitness out of step with the members; clamp to the last one.
	return p.Individuals[len(p.Individuals)-1], nil
}

// TournamentSelector draws two competitors with replacement.
type TournamentSelector struct {
	FitterWins bool
}

func (ts TournamentSelector) Select(p *Population, rng Rand) (*Individual, error) {
	if len(p.Individuals) == 0 {
		return nil, fmt.Errorf("tournament on empty population")
	}
	a := p.Individuals[rng.Intn(len(p.Individuals))]
	b := p.Individuals[rng.Intn(len(p.Individuals))]
	if ts.FitterWins {
		if b.Fitness.Better(a.Fitness) {
			return b, nil
		}
		return a, nil
	}
	if !a.Fitness.Better(b.Fitness) {
		return a, nil
	}
	return b, nil
}
