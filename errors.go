package genetic_queens

import "errors"

var (
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrDegenerateSelection = errors.New("roulette selection needs a positive total fitness")
	ErrUnknownSelection    = errors.New("unknown selection method")
	ErrGridShape           = errors.New("cost grid must be N x N")
)
