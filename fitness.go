package genetic_queens

import (
	"fmt"
	"strconv"
)

// Fitness is the cached score of an Individual. Higher values are better. An
// infeasible individual carries no value and always ranks below every
// feasible one.
type Fitness struct {
	Value      int
	Infeasible bool
}

// InfeasibleFitness is assigned when a genotype places a queen on a
// zero-cost cell of a weighted grid.
var InfeasibleFitness = Fitness{Infeasible: true}

func Feasible(v int) Fitness {
	return Fitness{Value: v}
}

// Better reports whether f ranks strictly above o.
func (f Fitness) Better(o Fitness) bool {
	if f.Infeasible {
		return false
	}
	if o.Infeasible {
		return true
	}
	return f.Value > o.Value
}

// Reaches reports whether f is exactly the ceiling. Infeasible never does.
func (f Fitness) Reaches(ceiling int) bool {
	return !f.Infeasible && f.Value == ceiling
}

// Weight is the share f contributes to total fitness and to the roulette
// wheel. Infeasible and negative scores weigh nothing.
func (f Fitness) Weight() int {
	if f.Infeasible || f.Value < 0 {
		return 0
	}
	return f.Value
}

func (f Fitness) String() string {
	if f.Infeasible {
		return "infeasible"
	}
	return strconv.Itoa(f.Value)
}

// Objective scores a genotype. Ceiling is the optimum used as the
// termination target.
type Objective interface {
	Evaluate(g Genotype) Fitness
	Ceiling() int
	Variant() Variant
}

// CostGrid holds per-cell costs indexed [column][row].
type CostGrid [][]int

// Total is the sum of all cells.
func (cg CostGrid) Total() int {
	total := 0
	for _, col := range cg {
		for _, v := range col {
			total += v
		}
	}
	return total
}

// Validate checks that the grid is n x n.
func (cg CostGrid) Validate(n int) error {
	if len(cg) != n {
		return fmt.Errorf("%w: got %d columns, want %d", ErrGridShape, len(cg), n)
	}
	for i, col := range cg {
		if len(col) != n {
			return fmt.Errorf("%w: column %d has %d cells, want %d", ErrGridShape, i, len(col), n)
		}
	}
	return nil
}

// CollisionObjective counts attacking queen pairs and subtracts them from an
// externally supplied ceiling.
type CollisionObjective struct {
	ceiling int
}

func NewCollisionObjective(ceiling int) *CollisionObjective {
	return &CollisionObjective{ceiling: ceiling}
}

// NewCollisionObjectiveFromGrid uses the grid total as the ceiling.
func NewCollisionObjectiveFromGrid(grid CostGrid) *CollisionObjective {
	return &CollisionObjective{ceiling: grid.Total()}
}

// PairCeiling is the number of unordered queen pairs on an n board, the
// largest count of non-attacking pairs.
func PairCeiling(n int) int {
	return n * (n - 1) / 2
}

func (co *CollisionObjective) Ceiling() int     { return co.ceiling }
func (co *CollisionObjective) Variant() Variant { return CollisionVariant }

func (co *CollisionObjective) Evaluate(g Genotype) Fitness {
	return Feasible(co.ceiling - Collisions(g))
}

// Collisions counts pairs of columns i<j whose queens share a row or a
// diagonal.
func Collisions(g Genotype) int {
	collisions := 0
	for i := 0; i < len(g)-1; i++ {
		step := 1
		for j := i + 1; j < len(g); j++ {
			switch g[j] {
			case g[i], g[i] + step, g[i] - step:
				collisions++
			}
			step++
		}
	}
	return collisions
}

// WeightedObjective sums the grid cells chosen by a genotype. Zero-cost
// cells are forbidden placements.
type WeightedObjective struct {
	grid CostGrid
}

func NewWeightedObjective(grid CostGrid) *WeightedObjective {
	return &WeightedObjective{grid: grid}
}

func (wo *WeightedObjective) Ceiling() int     { return wo.grid.Total() }
func (wo *WeightedObjective) Variant() Variant { return WeightedVariant }
func (wo *WeightedObjective) Grid() CostGrid   { return wo.grid }

func (wo *WeightedObjective) Evaluate(g Genotype) Fitness {
	sum := 0
	for col, row := range g {
		cost := wo.grid[col][row]
		if cost == 0 {
			return InfeasibleFitness
		}
		sum += cost
	}
	return Feasible(sum)
}
