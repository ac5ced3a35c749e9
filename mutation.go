package genetic_queens

// Mutation records one queen move: the column touched and its row before
// and after.
type Mutation struct {
	Position int
	From     int
	To       int
}

func NewMutation(n int, rng Rand) Mutation {
	pos := rng.Intn(n)
	return Mutation{
		Position: pos,
		To:       rng.Intn(n),
	}
}

func (m Mutation) Apply(ind *Individual) {
	m.From = ind.Genotype[m.Position]
	ind.Genotype[m.Position] = m.To
	ind.Mutations = append(ind.Mutations, m)
	ind.Evaluate()
}
