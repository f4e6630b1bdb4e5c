package query

import (
	"iter"
	"math"
	"math/bits"
	"strconv"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// label is the clause text a predicate was built from.
type label string

func (l label) String() string { return string(l) }

// clauseText rebuilds a readable clause from its tokens.
func clauseText(tokens []string) label {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		if tok == "" || strings.ContainsAny(tok, " ,\t") {
			tok = strconv.Quote(tok)
		}
		parts[i] = tok
	}
	return label(strings.Join(parts, " "))
}

// constant accepts every in-grid cell or none.
type constant struct {
	label
	grid   Grid
	accept bool
}

func newConstant(accept bool) Factory {
	return func(s *Scope, tokens []string) (Predicate, error) {
		if err := noArgs(tokens); err != nil {
			return nil, err
		}
		return &constant{label: clauseText(tokens), grid: s.Grid, accept: accept}, nil
	}
}

func (p *constant) Evaluate(c Cell) bool { return p.accept && InBounds(p.grid, c) }
func (p *constant) EvaluationRank() int  { return RankConstant }

func (p *constant) CandidateRank() int {
	if p.accept {
		return 0
	}
	return area(p.grid)
}

func (p *constant) Candidates() iter.Seq[Cell] {
	if p.accept {
		return AllCells(p.grid)
	}
	return func(func(Cell) bool) {}
}

// box is a half-open rectangle [x0,x1) × [y0,y1) already clipped to a grid.
type box struct {
	x0, y0, x1, y1 int
}

// clipBox intersects [x0,x1) × [y0,y1) with the grid. The result may be empty.
func clipBox(g Grid, x0, y0, x1, y1 int) box {
	b := box{max(x0, 0), max(y0, 0), min(x1, g.Width()), min(y1, g.Height())}
	if b.x1 < b.x0 {
		b.x1 = b.x0
	}
	if b.y1 < b.y0 {
		b.y1 = b.y0
	}
	return b
}

func (b box) contains(c Cell) bool {
	return c.X >= b.x0 && c.X < b.x1 && c.Y >= b.y0 && c.Y < b.y1
}

func (b box) size() int {
	return (b.x1 - b.x0) * (b.y1 - b.y0)
}

func (b box) cells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for y := b.y0; y < b.y1; y++ {
			for x := b.x0; x < b.x1; x++ {
				if !yield(Cell{x, y}) {
					return
				}
			}
		}
	}
}

// rect accepts the cells of a clipped rectangle, or everything else in the
// grid when negated.
type rect struct {
	label
	grid   Grid
	b      box
	negate bool
}

func (p *rect) Evaluate(c Cell) bool {
	if p.negate {
		return InBounds(p.grid, c) && !p.b.contains(c)
	}
	return p.b.contains(c)
}

func (p *rect) EvaluationRank() int { return RankGeometry }

func (p *rect) CandidateRank() int {
	if p.negate {
		return NotEnumerable
	}
	return area(p.grid) - p.b.size()
}

func (p *rect) Candidates() iter.Seq[Cell] { return p.b.cells() }

// newAreaWH builds AREA_WH x y w h.
func newAreaWH(negate bool) Factory {
	return func(s *Scope, tokens []string) (Predicate, error) {
		n, err := exactInts(tokens, 4)
		if err != nil {
			return nil, err
		}
		x, y, w, h := n[0], n[1], n[2], n[3]
		if err := positive(tokens[0], "width", w); err != nil {
			return nil, err
		}
		if err := positive(tokens[0], "height", h); err != nil {
			return nil, err
		}
		return &rect{
			label:  clauseText(tokens),
			grid:   s.Grid,
			b:      clipBox(s.Grid, x, y, satAdd(x, w), satAdd(y, h)),
			negate: negate,
		}, nil
	}
}

// newAreaXY builds AREA_XY x1 y1 x2 y2; both corners are inclusive and may be
// given in either order.
func newAreaXY(negate bool) Factory {
	return func(s *Scope, tokens []string) (Predicate, error) {
		n, err := exactInts(tokens, 4)
		if err != nil {
			return nil, err
		}
		x0, x1 := min(n[0], n[2]), max(n[0], n[2])
		y0, y1 := min(n[1], n[3]), max(n[1], n[3])
		return &rect{
			label:  clauseText(tokens),
			grid:   s.Grid,
			b:      clipBox(s.Grid, x0, y0, satAdd(x1, 1), satAdd(y1, 1)),
			negate: negate,
		}, nil
	}
}

// disc accepts cells within a Euclidean or Manhattan radius of a center.
type disc struct {
	label
	grid      Grid
	center    Cell
	radius    int
	manhattan bool
	negate    bool
	bounds    box
	count     int
}

func (p *disc) within(c Cell) bool {
	if !p.bounds.contains(c) {
		return false
	}
	dx, dy := c.X-p.center.X, c.Y-p.center.Y
	if p.manhattan {
		return uabs(dx)+uabs(dy) <= uint64(p.radius)
	}
	return withinEuclid(dx, dy, p.radius)
}

func (p *disc) Evaluate(c Cell) bool {
	if p.negate {
		return InBounds(p.grid, c) && !p.within(c)
	}
	return p.within(c)
}

func (p *disc) EvaluationRank() int { return RankGeometry }

func (p *disc) CandidateRank() int {
	if p.negate {
		return NotEnumerable
	}
	return area(p.grid) - p.count
}

func (p *disc) Candidates() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for c := range p.bounds.cells() {
			if p.within(c) && !yield(c) {
				return
			}
		}
	}
}

// newDisc builds RADIUS x y r (Euclidean) or DIAMOND x y r (Manhattan).
func newDisc(manhattan, negate bool) Factory {
	return func(s *Scope, tokens []string) (Predicate, error) {
		n, err := exactInts(tokens, 3)
		if err != nil {
			return nil, err
		}
		x, y, r := n[0], n[1], n[2]
		if err := positive(tokens[0], "radius", r); err != nil {
			return nil, err
		}
		p := &disc{
			label:     clauseText(tokens),
			grid:      s.Grid,
			center:    Cell{x, y},
			radius:    r,
			manhattan: manhattan,
			negate:    negate,
			bounds:    clipBox(s.Grid, satAdd(x, -r), satAdd(y, -r), satAdd(satAdd(x, r), 1), satAdd(satAdd(y, r), 1)),
		}
		for range p.Candidates() {
			p.count++
		}
		return p, nil
	}
}

// cellList accepts an explicit set of cells.
type cellList struct {
	label
	grid   Grid
	order  []Cell
	set    mapset.Set[Cell]
	negate bool
}

func (p *cellList) Evaluate(c Cell) bool {
	if p.negate {
		return InBounds(p.grid, c) && !p.set.Has(c)
	}
	return p.set.Has(c)
}

func (p *cellList) EvaluationRank() int { return RankCellList }

func (p *cellList) CandidateRank() int {
	if p.negate {
		return NotEnumerable
	}
	return area(p.grid) - len(p.order)
}

func (p *cellList) Candidates() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for _, c := range p.order {
			if !yield(c) {
				return
			}
		}
	}
}

// newCellList builds TILES x y [x y]...; cells outside the grid are dropped.
func newCellList(negate bool) Factory {
	return func(s *Scope, tokens []string) (Predicate, error) {
		n, err := ints(tokens)
		if err != nil {
			return nil, err
		}
		if len(n) == 0 || len(n)%2 != 0 {
			return nil, malformed(tokens[0], "want x y pairs, got %d values", len(n))
		}
		p := &cellList{label: clauseText(tokens), grid: s.Grid, set: mapset.New[Cell](), negate: negate}
		for i := 0; i < len(n); i += 2 {
			c := Cell{n[i], n[i+1]}
			if !InBounds(s.Grid, c) || p.set.Has(c) {
				continue
			}
			p.set.Put(c)
			p.order = append(p.order, c)
		}
		return p, nil
	}
}

// satAdd is a+b clamped to the int range, so far edges of huge shapes
// still clip to the grid.
func satAdd(a, b int) int {
	sum := a + b
	switch {
	case b > 0 && sum < a:
		return math.MaxInt
	case b < 0 && sum > a:
		return math.MinInt
	}
	return sum
}

// uabs is |n| as a uint64; it is exact for math.MinInt.
func uabs(n int) uint64 {
	if n < 0 {
		return uint64(-(n + 1)) + 1
	}
	return uint64(n)
}

// withinEuclid reports dx²+dy² <= r² using 128-bit products.
func withinEuclid(dx, dy, r int) bool {
	ahi, alo := bits.Mul64(uabs(dx), uabs(dx))
	bhi, blo := bits.Mul64(uabs(dy), uabs(dy))
	lo, carry := bits.Add64(alo, blo, 0)
	hi, _ := bits.Add64(ahi, bhi, carry)
	rhi, rlo := bits.Mul64(uint64(r), uint64(r))
	return hi < rhi || (hi == rhi && lo <= rlo)
}
