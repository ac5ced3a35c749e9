package genetic_queens

import (
	"context"
	"errors"
	mop "reflect"
	test "testing"
)

// recordingReporter keeps everything the engine reports.
type recordingReporter struct {
	stats    []*GenerationStats
	results  []*Result
	failWith error
}

func (rr *recordingReporter) Generation(stats *GenerationStats) error {
	rr.stats = append(rr.stats, stats)
	return rr.failWith
}

func (rr *recordingReporter) Finish(result *Result) error {
	rr.results = append(rr.results, result)
	return nil
}

func rouletteParams(generations, cut, mutation, elitism int) RunParams {
	return RunParams{
		Generations:  generations,
		CrossoverCut: cut,
		MutationRate: mutation,
		Selection:    SelectorConfig{Method: Roulette},
		Elitism:      elitism,
	}
}

func TestNewEngineInvalid(t *test.T) {
	obj := NewCollisionObjective(6)
	if _, err := NewEngine(0, 10, obj, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for board 0, got %v", err)
	}
	if _, err := NewEngine(4, -1, obj, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for negative population, got %v", err)
	}
	if _, err := NewEngine(4, 10, nil, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for nil objective, got %v", err)
	}
	_, err := NewEngine(3, 10, NewWeightedObjective(CostGrid{{1, 1}, {1, 1}}), nil)
	if !errors.Is(err, ErrInvalidConfig) || !errors.Is(err, ErrGridShape) {
		t.Errorf("Expected grid shape error, got %v", err)
	}
}

func TestNewEngineSynthesizesSortedPopulation(t *test.T) {
	e, err := NewEngine(6, 25, NewCollisionObjective(PairCeiling(6)), NewRand(1))
	if err != nil {
		t.Fatalf("NewEngine returned error: %v", err)
	}
	p := e.Population()
	if p.Size() != 25 || !p.Sorted() {
		t.Errorf("Expected 25 sorted individuals, got %d", p.Size())
	}
	if e.Ceiling() != 15 {
		t.Errorf("Expected ceiling 15, got %d", e.Ceiling())
	}
}

func TestStepKeepsSizeAndOrder(t *test.T) {
	for _, size := range []int{1, 2, 7, 20} {
		e, err := NewEngine(6, size, NewCollisionObjective(PairCeiling(6)), NewRand(int64(size)))
		if err != nil {
			t.Fatalf("NewEngine returned error: %v", err)
		}
		params := RunParams{CrossoverCut: 3, MutationRate: 30, Selection: SelectorConfig{Method: Tournament}, Elitism: 1}
		for gen := 0; gen < 30; gen++ {
			if err := e.Step(params); err != nil {
				t.Fatalf("Step returned error: %v", err)
			}
			p := e.Population()
			if p.Size() != size {
				t.Fatalf("size=%d gen=%d: population drifted to %d", size, gen, p.Size())
			}
			if !p.Sorted() {
				t.Fatalf("size=%d gen=%d: population not sorted", size, gen)
			}
		}
	}
}

func TestRunFourQueensScenario(t *test.T) {
	e, err := NewEngine(4, 20, NewCollisionObjective(PairCeiling(4)), NewRand(42))
	if err != nil {
		t.Fatalf("NewEngine returned error: %v", err)
	}
	rep := &recordingReporter{}
	e.SetReporter(rep)

	result, err := e.Run(context.Background(), rouletteParams(100, 2, 10, 1))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if result.Solved {
		if result.Best.Fitness.Value != 6 || result.Reason != ReachedCeiling {
			t.Errorf("Solved run should end at the ceiling, got %v (%s)", result.Best.Fitness, result.Reason)
		}
		if Collisions(result.Best.Genotype) != 0 {
			t.Errorf("Winning genotype %v still collides", result.Best.Genotype)
		}
	} else if result.Generations != 100 || result.Reason != Exhausted {
		t.Errorf("Unsolved run should exhaust 100 generations, got %d (%s)", result.Generations, result.Reason)
	}

	if len(rep.stats) != result.Generations {
		t.Errorf("Expected %d generation reports, got %d", result.Generations, len(rep.stats))
	}
	for i := 1; i < len(rep.stats); i++ {
		if rep.stats[i].BestFitness().Value < rep.stats[i-1].BestFitness().Value {
			t.Errorf("Best fitness regressed at generation %d: %v -> %v",
				i, rep.stats[i-1].BestFitness(), rep.stats[i].BestFitness())
		}
		if rep.stats[i].PopulationSize != 20 {
			t.Errorf("Generation %d reported size %d", i, rep.stats[i].PopulationSize)
		}
	}
	if len(rep.results) != 1 || rep.results[0] != result {
		t.Errorf("Finish should be called once with the result")
	}
}

func TestRunStopsWhenCeilingAlreadyReached(t *test.T) {
	// A single queen never collides, so every individual sits at ceiling 0.
	e, err := NewEngine(1, 5, NewCollisionObjective(PairCeiling(1)), NewRand(1))
	if err != nil {
		t.Fatalf("NewEngine returned error: %v", err)
	}
	rep := &recordingReporter{}
	e.SetReporter(rep)

	result, err := e.Run(context.Background(), rouletteParams(50, 1, 10, 1))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !result.Solved || result.Generations != 0 || result.Reason != ReachedCeiling {
		t.Errorf("Expected immediate solve, got %+v", result)
	}
	if len(rep.stats) != 0 || len(rep.results) != 1 {
		t.Errorf("Expected no generation reports and one finish, got %d and %d", len(rep.stats), len(rep.results))
	}
}

func TestRunZeroGenerations(t *test.T) {
	e, _ := NewEngine(8, 10, NewCollisionObjective(1000), NewRand(1))
	result, err := e.Run(context.Background(), rouletteParams(0, 4, 10, 1))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Generations != 0 || result.Reason != Exhausted || result.Best == nil {
		t.Errorf("Expected an exhausted run reporting the initial best, got %+v", result)
	}
}

func TestRunDegenerateRoulette(t *test.T) {
	grid := CostGrid{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}
	e, err := NewEngine(3, 6, NewWeightedObjective(grid), NewRand(1))
	if err != nil {
		t.Fatalf("NewEngine returned error: %v", err)
	}
	rep := &recordingReporter{}
	e.SetReporter(rep)

	result, err := e.Run(context.Background(), rouletteParams(10, 1, 10, 1))
	if !errors.Is(err, ErrDegenerateSelection) {
		t.Fatalf("Expected ErrDegenerateSelection, got %v", err)
	}
	if result.Reason != Failed || result.Solved || !result.Best.Fitness.Infeasible {
		t.Errorf("Unexpected failed result %+v", result)
	}
	if len(rep.results) != 1 {
		t.Errorf("Failure should still be reported")
	}
}

func TestRunTournamentToleratesInfeasible(t *test.T) {
	grid := CostGrid{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}
	e, _ := NewEngine(3, 6, NewWeightedObjective(grid), NewRand(1))

	params := rouletteParams(5, 1, 10, 1)
	params.Selection.Method = Tournament
	result, err := e.Run(context.Background(), params)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Generations != 5 || result.Reason != Exhausted {
		t.Errorf("Expected 5 exhausted generations, got %+v", result)
	}
}

func TestRunWeightedReachesCeilingNever(t *test.T) {
	grid := CostGrid{{1, 2}, {3, 4}}
	e, _ := NewEngine(2, 30, NewWeightedObjective(grid), NewRand(3))

	result, err := e.Run(context.Background(), rouletteParams(20, 1, 20, 1))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	// Two cells can never sum to the grid total of 10.
	if result.Solved || result.Generations != 20 {
		t.Errorf("Expected an unsolved 20 generation run, got %+v", result)
	}
	if result.Best.Fitness != Feasible(6) {
		t.Errorf("Expected the best placement (2+4) to be found, got %v", result.Best.Fitness)
	}
}

func TestRunUnknownSelection(t *test.T) {
	e, _ := NewEngine(4, 4, NewCollisionObjective(6), NewRand(1))
	params := rouletteParams(5, 2, 10, 1)
	params.Selection.Method = "rank"
	if _, err := e.Run(context.Background(), params); !errors.Is(err, ErrUnknownSelection) {
		t.Errorf("Expected ErrUnknownSelection, got %v", err)
	}
}

func TestRunCancelled(t *test.T) {
	e, _ := NewEngine(8, 10, NewCollisionObjective(1000), NewRand(1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := e.Run(ctx, rouletteParams(10, 4, 10, 1))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if result.Reason != Cancelled || result.Generations != 0 {
		t.Errorf("Unexpected cancelled result %+v", result)
	}
}

func TestRunReporterFailureStops(t *test.T) {
	e, _ := NewEngine(8, 10, NewCollisionObjective(1000), NewRand(1))
	boom := errors.New("boom")
	e.SetReporter(&recordingReporter{failWith: boom})

	result, err := e.Run(context.Background(), rouletteParams(10, 4, 10, 1))
	if !errors.Is(err, boom) {
		t.Errorf("Expected reporter error, got %v", err)
	}
	if result.Reason != Failed {
		t.Errorf("Expected failed reason, got %s", result.Reason)
	}
}

func TestRunIsReproducibleWithSeed(t *test.T) {
	run := func() *Result {
		e, err := NewEngine(8, 30, NewCollisionObjective(PairCeiling(8)), NewRand(1234))
		if err != nil {
			t.Fatalf("NewEngine returned error: %v", err)
		}
		params := RunParams{Generations: 40, CrossoverCut: 4, MutationRate: 15,
			Selection: SelectorConfig{Method: Tournament, FitterWins: true}, Elitism: 2}
		result, err := e.Run(context.Background(), params)
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
		return result
	}

	a, b := run(), run()
	if !mop.DeepEqual(a.Best.Genotype, b.Best.Genotype) || a.Generations != b.Generations {
		t.Errorf("Seeded runs diverged: %v after %d vs %v after %d",
			a.Best, a.Generations, b.Best, b.Generations)
	}
	for i := range a.History {
		if a.History[i].MeanFitness != b.History[i].MeanFitness {
			t.Errorf("Seeded runs diverged at generation %d", i)
			break
		}
	}
}
