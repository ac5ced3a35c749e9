package genetic_queens

import (
	"context"
	"errors"
	"fmt"
)

// RunParams are the per-run knobs of Engine.Run.
type RunParams struct {
	Generations  int
	CrossoverCut int
	// MutationRate is a percentage in [0, 100], drawn once per child.
	MutationRate int
	Selection    SelectorConfig
	Elitism      int
}

// Result is the outcome of a run. Best is reported whichever condition
// stopped the loop.
type Result struct {
	Best        *Individual
	Generations int
	Ceiling     int
	Solved      bool
	Reason      StopReason
	History     []*GenerationStats
}

// Engine owns a population and evolves it generation by generation. It is
// not safe for concurrent use.
type Engine struct {
	BoardSize      int
	PopulationSize int
	objective      Objective
	rng            Rand
	population     *Population
	reporter       Reporter
}

// NewEngine synthesizes a random population of populationSize individuals
// on a boardSize board.
func NewEngine(boardSize, populationSize int, objective Objective, rng Rand) (*Engine, error) {
	if boardSize <= 0 {
		return nil, fmt.Errorf("%w: board size must be > 0 (got %d)", ErrInvalidConfig, boardSize)
	}
	if populationSize <= 0 {
		return nil, fmt.Errorf("%w: population size must be > 0 (got %d)", ErrInvalidConfig, populationSize)
	}
	if objective == nil {
		return nil, fmt.Errorf("%w: objective cannot be nil", ErrInvalidConfig)
	}
	if wo, ok := objective.(*WeightedObjective); ok {
		if err := wo.Grid().Validate(boardSize); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if rng == nil {
		rng = NewRand(0)
	}

	return &Engine{
		BoardSize:      boardSize,
		PopulationSize: populationSize,
		objective:      objective,
		rng:            rng,
		population:     NewRandomPopulation(populationSize, boardSize, objective, rng),
	}, nil
}

func (e *Engine) SetReporter(reporter Reporter) {
	e.reporter = reporter
}

func (e *Engine) Population() *Population {
	return e.population
}

func (e *Engine) Ceiling() int {
	return e.objective.Ceiling()
}

func (e *Engine) Objective() Objective {
	return e.objective
}

// Run evolves until the generation budget is spent or the best individual
// hits the ceiling exactly. A degenerate roulette stops the run with
// ErrDegenerateSelection; ctx cancellation is checked between generations.
func (e *Engine) Run(ctx context.Context, params RunParams) (*Result, error) {
	reproducer, err := e.newReproducer(params)
	if err != nil {
		return nil, err
	}
	culler := NewCuller(e.PopulationSize)
	ceiling := e.Ceiling()

	result := &Result{Ceiling: ceiling, Reason: Exhausted}
	var runErr error

	gen := 0
LOOP:
	for gen < params.Generations && !e.population.Best().Fitness.Reaches(ceiling) {
		select {
		case <-ctx.Done():
			result.Reason = Cancelled
			runErr = ctx.Err()
			break LOOP
		default:
		}

		stats := ComputeStats(gen, e.population)
		result.History = append(result.History, stats)
		if e.reporter != nil {
			if err := e.reporter.Generation(stats); err != nil {
				result.Reason = Failed
				runErr = fmt.Errorf("failed to report generation %d: %w", gen, err)
				break LOOP
			}
		}

		if err := e.advance(reproducer, culler); err != nil {
			result.Reason = Failed
			runErr = fmt.Errorf("generation %d: %w", gen, err)
			break LOOP
		}
		gen++
	}

	result.Generations = gen
	result.Best = e.population.Best().Clone()
	result.Solved = result.Best.Fitness.Reaches(ceiling)
	if result.Solved {
		result.Reason = ReachedCeiling
	}

	if e.reporter != nil {
		if err := e.reporter.Finish(result); err != nil {
			runErr = errors.Join(runErr, fmt.Errorf("failed to report result: %w", err))
		}
	}
	return result, runErr
}

// Step replaces the population with exactly one new generation.
func (e *Engine) Step(params RunParams) error {
	reproducer, err := e.newReproducer(params)
	if err != nil {
		return err
	}
	return e.advance(reproducer, NewCuller(e.PopulationSize))
}

func (e *Engine) newReproducer(params RunParams) (*Reproducer, error) {
	selector, err := NewSelector(&params.Selection)
	if err != nil {
		return nil, err
	}
	return NewReproducer(selector, e.objective, params.CrossoverCut, params.MutationRate, params.Elitism), nil
}

func (e *Engine) advance(reproducer *Reproducer, culler *Culler) error {
	next, err := reproducer.Reproduce(e.population, e.rng)
	if err != nil {
		return err
	}
	culler.Cull(next)
	e.population = next
	return nil
}
