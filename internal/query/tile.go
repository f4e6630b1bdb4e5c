package query

import (
	"strconv"
	"strings"
)

// property accepts cells where a layer property is present and, when values
// are given, equal to one of them (case-insensitive).
type property struct {
	scanOnly
	label
	grid       Grid
	layer, key string
	values     []string
	negate     bool
}

func (p *property) match(c Cell) bool {
	v, ok := p.grid.Property(c.X, c.Y, p.layer, p.key)
	if !ok {
		return false
	}
	if len(p.values) == 0 {
		return true
	}
	for _, want := range p.values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}

func (p *property) Evaluate(c Cell) bool {
	if !InBounds(p.grid, c) {
		return false
	}
	return p.match(c) != p.negate
}

func (p *property) EvaluationRank() int { return RankTile }

// newProperty builds PROPERTY layer key [value...].
func newProperty(negate bool) Factory {
	return func(s *Scope, tokens []string) (Predicate, error) {
		if len(tokens) < 3 {
			return nil, malformed(tokens[0], "want a layer and a property name")
		}
		return &property{
			label:  clauseText(tokens),
			grid:   s.Grid,
			layer:  tokens[1],
			key:    tokens[2],
			values: tokens[3:],
			negate: negate,
		}, nil
	}
}

// index accepts cells with a tile on the given layer, optionally limited to a
// set of tile-sheet indices.
type index struct {
	scanOnly
	label
	grid    Grid
	layer   string
	indices map[int]struct{}
	negate  bool
}

func (p *index) match(c Cell) bool {
	i, ok := p.grid.TileIndex(c.X, c.Y, p.layer)
	if !ok {
		return false
	}
	if len(p.indices) == 0 {
		return true
	}
	_, ok = p.indices[i]
	return ok
}

func (p *index) Evaluate(c Cell) bool {
	if !InBounds(p.grid, c) {
		return false
	}
	return p.match(c) != p.negate
}

func (p *index) EvaluationRank() int { return RankTile }

// newIndex builds INDEX layer [index...].
func newIndex(negate bool) Factory {
	return func(s *Scope, tokens []string) (Predicate, error) {
		if len(tokens) < 2 {
			return nil, malformed(tokens[0], "want a layer name")
		}
		p := &index{label: clauseText(tokens), grid: s.Grid, layer: tokens[1], negate: negate}
		if len(tokens) > 2 {
			p.indices = make(map[int]struct{}, len(tokens)-2)
			for _, tok := range tokens[2:] {
				n, err := strconv.Atoi(tok)
				if err != nil {
					return nil, malformed(tokens[0], "%q is not a tile index", tok)
				}
				p.indices[n] = struct{}{}
			}
		}
		return p, nil
	}
}

// fact accepts cells where one boolean grid fact equals want.
type fact struct {
	scanOnly
	label
	grid Grid
	test func(Grid, Cell) bool
	want bool
	rank int
}

func (p *fact) Evaluate(c Cell) bool {
	return InBounds(p.grid, c) && p.test(p.grid, c) == p.want
}

func (p *fact) EvaluationRank() int { return p.rank }

func newFact(test func(Grid, Cell) bool, want bool, rank int) Factory {
	return func(s *Scope, tokens []string) (Predicate, error) {
		if err := noArgs(tokens); err != nil {
			return nil, err
		}
		return &fact{label: clauseText(tokens), grid: s.Grid, test: test, want: want, rank: rank}, nil
	}
}

func passable(g Grid, c Cell) bool  { return g.IsPassable(c) }
func occupied(g Grid, c Cell) bool  { return g.IsOccupied(c) }
func hasObject(g Grid, c Cell) bool { return g.HasObject(c) }
func placeable(g Grid, c Cell) bool { return g.CanPlaceItem(c) }
