package query

import "iter"

// NotEnumerable is the CandidateRank of a predicate that cannot list its
// accepted cells without scanning the grid.
const NotEnumerable = -1

// Evaluation ranks. Higher runs earlier.
const (
	RankFootprint = 0
	RankCellState = 20
	RankTile      = 50
	RankGeometry  = 80
	RankCellList  = 90
	RankConstant  = 100
)

// Predicate is one clause of a tile query.
type Predicate interface {
	// Evaluate reports whether c is accepted.
	Evaluate(c Cell) bool
	// EvaluationRank orders predicates inside a condition; it never affects
	// which cells match.
	EvaluationRank() int
	// CandidateRank is NotEnumerable, or a value where higher means Candidates
	// is the better starting set.
	CandidateRank() int
	// Candidates yields the accepted cells. Only valid when CandidateRank is
	// not NotEnumerable.
	Candidates() iter.Seq[Cell]
}

// Stateful is implemented by predicates that mutate internal state while
// evaluating. Fresh returns an equivalent predicate with empty state; each
// evaluation pass works on its own fresh copy.
type Stateful interface {
	Fresh() Predicate
}

// Superset is implemented by predicates whose Candidates may include cells
// that Evaluate rejects. Such a source is kept in the filter chain.
type Superset interface {
	SupersetCandidates() bool
}

// scanOnly provides the non-enumerable half of Predicate.
type scanOnly struct{}

func (scanOnly) CandidateRank() int { return NotEnumerable }

func (scanOnly) Candidates() iter.Seq[Cell] {
	return func(func(Cell) bool) {}
}

// freshen returns ps with every Stateful predicate replaced by a fresh copy.
// The original slice is returned when nothing is stateful.
func freshen(ps []Predicate) []Predicate {
	var out []Predicate
	for i, p := range ps {
		s, ok := p.(Stateful)
		if !ok {
			continue
		}
		if out == nil {
			out = make([]Predicate, len(ps))
			copy(out, ps)
		}
		out[i] = s.Fresh()
	}
	if out == nil {
		return ps
	}
	return out
}

// isStateful reports whether any predicate in ps is Stateful.
func isStateful(ps []Predicate) bool {
	for _, p := range ps {
		if _, ok := p.(Stateful); ok {
			return true
		}
	}
	return false
}

// allMatch is the AND of ps at c, short-circuiting in slice order.
func allMatch(ps []Predicate, c Cell) bool {
	for _, p := range ps {
		if !p.Evaluate(c) {
			return false
		}
	}
	return true
}

// bestSource returns the index of the predicate with the highest candidate
// rank, or -1 when none is enumerable. Ties keep the earliest.
func bestSource(ps []Predicate) int {
	best, bestRank := -1, NotEnumerable
	for i, p := range ps {
		r := p.CandidateRank()
		if r == NotEnumerable {
			continue
		}
		if best == -1 || r > bestRank {
			best, bestRank = i, r
		}
	}
	return best
}
