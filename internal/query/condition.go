package query

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Condition is a parsed tile query bound to one grid: an AND of predicates
// held in descending evaluation-rank order.
type Condition struct {
	expr       string
	grid       Grid
	predicates []Predicate
}

// Parse builds a Condition for expr against g. A blank expression matches
// every cell. Any unknown keyword or malformed clause fails the whole parse.
func Parse(r *Registry, g Grid, expr string) (*Condition, error) {
	s := &Scope{Grid: g, registry: r}
	ps, err := s.Parse(expr)
	if err != nil {
		return nil, err
	}
	return &Condition{expr: expr, grid: g, predicates: ps}, nil
}

// Parse turns a (possibly nested) expression into predicates sorted by rank.
func (s *Scope) Parse(expr string) ([]Predicate, error) {
	if strings.TrimSpace(expr) == "" {
		expr = "ALL"
	}
	clauses, err := SplitClauses(expr)
	if err != nil {
		return nil, &ParseError{Expression: expr, Err: err}
	}
	ps := make([]Predicate, 0, len(clauses))
	for _, clause := range clauses {
		tokens, err := SplitTokens(clause)
		if err != nil {
			return nil, &ParseError{Expression: expr, Clause: clause, Err: err}
		}
		p, err := s.registry.Create(s, tokens)
		if err != nil {
			return nil, &ParseError{Expression: expr, Clause: clause, Err: err}
		}
		ps = append(ps, p)
	}
	sortByRank(ps)
	return ps, nil
}

// sortByRank orders ps by descending evaluation rank; ties keep text order.
func sortByRank(ps []Predicate) {
	slices.SortStableFunc(ps, func(a, b Predicate) int {
		return cmp.Compare(b.EvaluationRank(), a.EvaluationRank())
	})
}

// Expression returns the text the condition was parsed from.
func (c *Condition) Expression() string { return c.expr }

// Grid returns the grid the condition was built for.
func (c *Condition) Grid() Grid { return c.grid }

// Predicates returns the predicates in evaluation order.
func (c *Condition) Predicates() []Predicate {
	return slices.Clone(c.predicates)
}

// Source returns the predicate that would supply starting candidates when
// none are given, or nil when the whole grid is scanned.
func (c *Condition) Source() Predicate {
	if i := bestSource(c.predicates); i >= 0 {
		return c.predicates[i]
	}
	return nil
}

// Matches reports whether cell passes every predicate. Stateful predicates
// are evaluated on fresh copies, so Matches never claims cells.
func (c *Condition) Matches(cell Cell) bool {
	return InBounds(c.grid, cell) && allMatch(freshen(c.predicates), cell)
}

// Cells lazily yields the cells that pass every predicate.
//
// With nil candidates, the best enumerable predicate supplies the starting
// cells (or the whole grid when none can), and is skipped during filtering
// unless its candidates are only a superset. Supplied candidates are clipped
// to the grid and checked against every predicate.
//
// A non-nil shuffle reorders the starting cells before filtering. Every
// iteration of the returned sequence is an independent pass with its own
// copies of stateful predicates.
func (c *Condition) Cells(candidates iter.Seq[Cell], shuffle func([]Cell)) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		ps := freshen(c.predicates)
		start := candidates
		if start == nil {
			start = AllCells(c.grid)
			if i := bestSource(ps); i >= 0 {
				src := ps[i]
				start = src.Candidates()
				if sup, ok := src.(Superset); !ok || !sup.SupersetCandidates() {
					ps = slices.Delete(slices.Clone(ps), i, i+1)
				}
			}
		} else {
			start = clipped(c.grid, start)
		}
		if shuffle != nil {
			cells := slices.Collect(start)
			shuffle(cells)
			start = slices.Values(cells)
		}
		for cell := range start {
			if allMatch(ps, cell) && !yield(cell) {
				return
			}
		}
	}
}

// describe lists predicates in evaluation order for logging.
func describe(ps []Predicate) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		if s, ok := p.(fmt.Stringer); ok {
			out[i] = s.String()
		} else {
			out[i] = fmt.Sprintf("%T", p)
		}
	}
	return out
}

// Describe lists the condition's predicates in evaluation order.
func (c *Condition) Describe() []string {
	return describe(c.predicates)
}
