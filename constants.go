package genetic_queens

import (
	"math/rand"
	"time"
)

// Rand is the subset of *rand.Rand the operators draw from.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a generator owned by a single engine. If seed is 0, the
// current time is used (non-deterministic). A non-zero seed gives
// reproducible runs.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

type Variant string

const (
	CollisionVariant Variant = "collision"
	WeightedVariant  Variant = "weighted"
)

type SelectionMethod string

const (
	Roulette   SelectionMethod = "roulette"
	Tournament SelectionMethod = "tournament"
)

type StopReason string

const (
	ReachedCeiling StopReason = "ceiling"
	Exhausted      StopReason = "exhausted"
	Cancelled      StopReason = "cancelled"
	Failed         StopReason = "failed"
)

const (
	DefaultSelection = Roulette
	DefaultElitism   = 1
	// EmptyCell marks unoccupied phenotype cells in the weighted variant.
	EmptyCell = "-"
)
