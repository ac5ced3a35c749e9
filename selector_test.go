package genetic_queens

import (
	"errors"
	test "testing"
)

func TestParseSelectionMethod(t *test.T) {
	cases := map[string]SelectionMethod{
		"roulette":   Roulette,
		"roleta":     Roulette,
		" Roulette ": Roulette,
		"tournament": Tournament,
		"torneio":    Tournament,
		"TOURNAMENT": Tournament,
	}
	for in, expected := range cases {
		got, err := ParseSelectionMethod(in)
		if err != nil || got != expected {
			t.Errorf("ParseSelectionMethod(%q) = %q, %v; expected %q", in, got, err, expected)
		}
	}
	if _, err := ParseSelectionMethod("rank"); !errors.Is(err, ErrUnknownSelection) {
		t.Errorf("Expected ErrUnknownSelection, got %v", err)
	}
}

func TestNewSelector(t *test.T) {
	if s, err := NewSelector(&SelectorConfig{Method: Roulette}); err != nil {
		t.Errorf("Unexpected error: %v", err)
	} else if _, ok := s.(RouletteSelector); !ok {
		t.Errorf("Expected RouletteSelector, got %T", s)
	}
	s, err := NewSelector(&SelectorConfig{Method: "torneio", FitterWins: true})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ts, ok := s.(TournamentSelector); !ok || !ts.FitterWins {
		t.Errorf("Expected fitter-wins TournamentSelector, got %#v", s)
	}
	if _, err := NewSelector(&SelectorConfig{}); err == nil {
		t.Errorf("Expected error for empty method")
	}
}

func TestRouletteWalk(t *test.T) {
	p := makeScoredPopulation(Feasible(5), Feasible(3), Feasible(2))

	// Draw -> index: the walk stops once the remainder is <= 0.
	cases := []struct {
		draw     int
		expected int
	}{
		{0, 0},
		{4, 0},
		{5, 0},
		{6, 1},
		{8, 1},
		{9, 2},
	}
	for _, c := range cases {
		u, err := RouletteSelector{}.Select(p, &scriptedRand{values: []int{c.draw}})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if u != p.Individuals[c.expected] {
			t.Errorf("Draw %d: expected index %d, got fitness %v", c.draw, c.expected, u.Fitness)
		}
	}
}

func TestRouletteClampsToLast(t *test.T) {
	p := makeScoredPopulation(Feasible(1), Feasible(1))
	p.TotalFitness = 100

	u, err := RouletteSelector{}.Select(p, &scriptedRand{values: []int{99}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if u != p.Individuals[1] {
		t.Errorf("Expected the walk to clamp to the last individual")
	}
}

func TestRouletteDegenerate(t *test.T) {
	p := makeScoredPopulation(InfeasibleFitness, InfeasibleFitness)
	if _, err := (RouletteSelector{}).Select(p, NewRand(1)); !errors.Is(err, ErrDegenerateSelection) {
		t.Errorf("Expected ErrDegenerateSelection, got %v", err)
	}

	p = makeScoredPopulation(Feasible(0), Feasible(-1))
	if _, err := (RouletteSelector{}).Select(p, NewRand(1)); !errors.Is(err, ErrDegenerateSelection) {
		t.Errorf("Expected ErrDegenerateSelection for zero total, got %v", err)
	}
}

func TestRouletteNeverOutOfBounds(t *test.T) {
	rng := NewRand(11)
	obj := NewCollisionObjective(PairCeiling(6))
	p := NewRandomPopulation(25, 6, obj, rng)
	for i := 0; i < 1000; i++ {
		u, err := RouletteSelector{}.Select(p, rng)
		if err != nil || u == nil {
			t.Fatalf("Selection failed: %v", err)
		}
	}
}

func TestTournamentLowerOrEqualWins(t *test.T) {
	p := makeScoredPopulation(Feasible(5), Feasible(3), Feasible(2))
	ts := TournamentSelector{}

	u, _ := ts.Select(p, &scriptedRand{values: []int{0, 2}})
	if u != p.Individuals[2] {
		t.Errorf("Expected the lower competitor (2), got %v", u.Fitness)
	}
	u, _ = ts.Select(p, &scriptedRand{values: []int{2, 0}})
	if u != p.Individuals[2] {
		t.Errorf("Expected the lower competitor (2) regardless of order, got %v", u.Fitness)
	}
	u, _ = ts.Select(p, &scriptedRand{values: []int{1, 1}})
	if u != p.Individuals[1] {
		t.Errorf("Same index twice should return it")
	}
}

func TestTournamentTieReturnsFirst(t *test.T) {
	p := makeScoredPopulation(Feasible(4), Feasible(4))
	u, _ := TournamentSelector{}.Select(p, &scriptedRand{values: []int{1, 0}})
	if u != p.Individuals[1] {
		t.Errorf("Tie should return the first competitor drawn")
	}
	u, _ = TournamentSelector{FitterWins: true}.Select(p, &scriptedRand{values: []int{1, 0}})
	if u != p.Individuals[1] {
		t.Errorf("Tie should return the first competitor drawn when fitter wins")
	}
}

func TestTournamentFitterWins(t *test.T) {
	p := makeScoredPopulation(Feasible(5), Feasible(3), InfeasibleFitness)
	ts := TournamentSelector{FitterWins: true}

	u, _ := ts.Select(p, &scriptedRand{values: []int{2, 0}})
	if u != p.Individuals[0] {
		t.Errorf("Expected the fitter competitor (5), got %v", u.Fitness)
	}
	u, _ = TournamentSelector{}.Select(p, &scriptedRand{values: []int{0, 2}})
	if u != p.Individuals[2] {
		t.Errorf("Infeasible ranks lowest and should win the default tournament, got %v", u.Fitness)
	}
}
