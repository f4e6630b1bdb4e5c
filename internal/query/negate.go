package query

// not accepts the in-grid cells that a nested expression rejects.
type not struct {
	scanOnly
	label
	grid  Grid
	inner []Predicate
	rank  int
}

func (p *not) Evaluate(c Cell) bool {
	return InBounds(p.grid, c) && !allMatch(p.inner, c)
}

func (p *not) EvaluationRank() int { return p.rank }

func (p *not) Fresh() Predicate {
	if !isStateful(p.inner) {
		return p
	}
	cp := *p
	cp.inner = freshen(p.inner)
	return &cp
}

// newNot builds NOT "expr". The nested expression may hold several clauses.
func newNot(s *Scope, tokens []string) (Predicate, error) {
	if len(tokens) != 2 {
		return nil, malformed(tokens[0], "want one quoted expression, got %d arguments", len(tokens)-1)
	}
	inner, err := s.Parse(tokens[1])
	if err != nil {
		return nil, err
	}
	p := &not{label: clauseText(tokens), grid: s.Grid, inner: inner, rank: RankConstant}
	for _, q := range inner {
		p.rank = min(p.rank, q.EvaluationRank())
	}
	return p, nil
}
