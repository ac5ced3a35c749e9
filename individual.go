package genetic_queens

import (
	"fmt"
	"strconv"
	"strings"

	cp "github.com/jinzhu/copier"
)

// Genotype holds one row index per board column.
type Genotype []int

func (g Genotype) String() string {
	parts := make([]string, len(g))
	for i, v := range g {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

// Key packs each gene into one byte so genotypes can be compared as
// strings. Genes wrap modulo 256 on larger boards.
func (g Genotype) Key() string {
	b := make([]byte, len(g))
	for i, v := range g {
		b[i] = byte(v)
	}
	return string(b)
}

// Crossover copies [0, cut) from a and [cut, n) from b. A cut at or past n
// copies a entirely and a cut at or below 0 copies b entirely.
func Crossover(a, b Genotype, cut int) Genotype {
	n := len(a)
	if cut < 0 {
		cut = 0
	} else if cut > n {
		cut = n
	}
	child := make(Genotype, n)
	copy(child[:cut], a[:cut])
	copy(child[cut:], b[cut:])
	return child
}

// Individual is one candidate placement and its cached fitness.
type Individual struct {
	Genotype  Genotype
	Fitness   Fitness
	Mutations []Mutation
	objective Objective
}

// NewRandomIndividual draws every gene uniformly from [0, n).
func NewRandomIndividual(n int, objective Objective, rng Rand) *Individual {
	g := make(Genotype, n)
	for i := range g {
		g[i] = rng.Intn(n)
	}
	ind := &Individual{Genotype: g, objective: objective}
	ind.Evaluate()
	return ind
}

// NewOffspring builds a child from the head of a and the tail of b.
func NewOffspring(a, b Genotype, cut int, objective Objective) *Individual {
	ind := &Individual{Genotype: Crossover(a, b, cut), objective: objective}
	ind.Evaluate()
	return ind
}

// NewIndividual wraps an explicit genotype, mostly for seeding and tests.
func NewIndividual(g Genotype, objective Objective) *Individual {
	ind := &Individual{Genotype: g, objective: objective}
	ind.Evaluate()
	return ind
}

func (ind *Individual) Evaluate() {
	ind.Fitness = ind.objective.Evaluate(ind.Genotype)
}

// Mutate moves the queen of one random column to a random row and
// re-evaluates.
func (ind *Individual) Mutate(rng Rand) {
	NewMutation(len(ind.Genotype), rng).Apply(ind)
}

func (ind *Individual) Objective() Objective {
	return ind.objective
}

func (ind *Individual) Clone() *Individual {
	clone := &Individual{}
	if err := cp.CopyWithOption(clone, ind, cp.Option{DeepCopy: true}); err != nil {
		panic(fmt.Errorf("failed to clone individual: %w", err))
	}
	clone.objective = ind.objective
	return clone
}

// Phenotype renders the board indexed [row][column]. Collision boards mark
// queens with 1 and empty cells with 0; weighted boards show the chosen
// cell's cost and EmptyCell elsewhere.
func (ind *Individual) Phenotype() [][]string {
	n := len(ind.Genotype)
	var grid CostGrid
	if wo, ok := ind.objective.(*WeightedObjective); ok {
		grid = wo.Grid()
	}

	board := make([][]string, n)
	for r := range board {
		board[r] = make([]string, n)
		for c := range board[r] {
			if grid != nil {
				board[r][c] = EmptyCell
			} else {
				board[r][c] = "0"
			}
		}
	}
	for col, row := range ind.Genotype {
		if grid != nil {
			board[row][col] = strconv.Itoa(grid[col][row])
		} else {
			board[row][col] = "1"
		}
	}
	return board
}

func (ind *Individual) String() string {
	return fmt.Sprintf("[%s] fitness=%s", ind.Genotype, ind.Fitness)
}
