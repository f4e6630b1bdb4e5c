package query

import (
	"iter"

	"github.com/zyedidia/generic/mapset"
)

// footprint accepts a cell when the w×h block anchored at its top-left
// corner lies in the grid, every block cell satisfies the nested
// expressions, and no block cell was claimed by an earlier accepted block.
//
// Evaluating is also allocating: an accepted block claims its cells for the
// rest of this instance's lifetime. Conditions hand each pass a Fresh copy.
type footprint struct {
	label
	grid   Grid
	w, h   int
	inner  []Predicate
	memo   map[Cell]bool
	claims mapset.Set[Cell]
}

// cellOK reports whether one block cell satisfies the nested expressions.
func (p *footprint) cellOK(c Cell) bool {
	if ok, seen := p.memo[c]; seen {
		return ok
	}
	ok := allMatch(p.inner, c)
	p.memo[c] = ok
	return ok
}

func (p *footprint) block(anchor Cell) iter.Seq[Cell] {
	return box{anchor.X, anchor.Y, satAdd(anchor.X, p.w), satAdd(anchor.Y, p.h)}.cells()
}

func (p *footprint) Evaluate(anchor Cell) bool {
	for c := range p.block(anchor) {
		if !InBounds(p.grid, c) || p.claims.Has(c) || !p.cellOK(c) {
			return false
		}
	}
	for c := range p.block(anchor) {
		p.claims.Put(c)
	}
	return true
}

func (p *footprint) EvaluationRank() int { return RankFootprint }

// CandidateRank delegates to the best enumerable nested predicate: an anchor
// is itself a block cell, so it must be one of that predicate's cells.
func (p *footprint) CandidateRank() int {
	if i := bestSource(p.inner); i >= 0 {
		return p.inner[i].CandidateRank()
	}
	return NotEnumerable
}

func (p *footprint) Candidates() iter.Seq[Cell] {
	if i := bestSource(p.inner); i >= 0 {
		return p.inner[i].Candidates()
	}
	return func(func(Cell) bool) {}
}

func (p *footprint) SupersetCandidates() bool { return true }

func (p *footprint) Fresh() Predicate {
	return &footprint{
		label:  p.label,
		grid:   p.grid,
		w:      p.w,
		h:      p.h,
		inner:  freshen(p.inner),
		memo:   make(map[Cell]bool),
		claims: mapset.New[Cell](),
	}
}

// Claimed reports how many cells accepted blocks have claimed so far.
func (p *footprint) Claimed() int { return p.claims.Size() }

// newFootprint builds SIZE w h ["expr"...].
func newFootprint(s *Scope, tokens []string) (Predicate, error) {
	if len(tokens) < 3 {
		return nil, malformed(tokens[0], "want a width and a height")
	}
	n, err := ints(tokens[:3])
	if err != nil {
		return nil, err
	}
	w, h := n[0], n[1]
	if err := positive(tokens[0], "width", w); err != nil {
		return nil, err
	}
	if err := positive(tokens[0], "height", h); err != nil {
		return nil, err
	}
	var inner []Predicate
	for _, expr := range tokens[3:] {
		ps, err := s.Parse(expr)
		if err != nil {
			return nil, err
		}
		inner = append(inner, ps...)
	}
	sortByRank(inner)
	return &footprint{
		label:  clauseText(tokens),
		grid:   s.Grid,
		w:      w,
		h:      h,
		inner:  inner,
		memo:   make(map[Cell]bool),
		claims: mapset.New[Cell](),
	}, nil
}
