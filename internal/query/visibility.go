package query

import (
	"iter"

	"github.com/zyedidia/generic/mapset"
)

// octants maps a (dx, dy) sweep pair to a world offset:
//
//	worldX = cx + dx*xx + dy*xy
//	worldY = cy + dx*yx + dy*yy
//
// dx sweeps within a row and dy is the fixed row index.
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// visible accepts cells in line of sight of an origin within a radius.
// Impassable cells block sight but are themselves seen. The set is computed
// when the clause is parsed, so a terrain edit needs Cache.Forget.
type visible struct {
	label
	grid   Grid
	order  []Cell
	set    mapset.Set[Cell]
	negate bool
}

func (p *visible) Evaluate(c Cell) bool {
	if p.negate {
		return InBounds(p.grid, c) && !p.set.Has(c)
	}
	return p.set.Has(c)
}

func (p *visible) EvaluationRank() int { return RankGeometry }

func (p *visible) CandidateRank() int {
	if p.negate {
		return NotEnumerable
	}
	return area(p.grid) - len(p.order)
}

func (p *visible) Candidates() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for _, c := range p.order {
			if !yield(c) {
				return
			}
		}
	}
}

// newVisible builds VISIBLE x y r.
func newVisible(negate bool) Factory {
	return func(s *Scope, tokens []string) (Predicate, error) {
		n, err := exactInts(tokens, 3)
		if err != nil {
			return nil, err
		}
		if err := positive(tokens[0], "radius", n[2]); err != nil {
			return nil, err
		}
		p := &visible{label: clauseText(tokens), grid: s.Grid, set: mapset.New[Cell](), negate: negate}
		w, h := s.Grid.Width(), s.Grid.Height()
		origin := Cell{n[0], n[1]}
		// Cells past the grid are opaque, so an origin more than one step
		// outside sees nothing and no in-grid cell is farther than w+h+2.
		if origin.X < -1 || origin.Y < -1 || origin.X > w || origin.Y > h {
			return p, nil
		}
		fov := &shadowcast{grid: s.Grid, origin: origin, radius: min(n[2], w+h+2), lit: p.set}
		fov.run()
		// Row-major order keeps candidate output deterministic.
		for c := range fov.bounds().cells() {
			if p.set.Has(c) {
				p.order = append(p.order, c)
			}
		}
		return p, nil
	}
}

// shadowcast is recursive shadowcasting over a Grid.
type shadowcast struct {
	grid   Grid
	origin Cell
	radius int
	lit    mapset.Set[Cell]
}

func (s *shadowcast) bounds() box {
	o, r := s.origin, s.radius
	return clipBox(s.grid, o.X-r, o.Y-r, o.X+r+1, o.Y+r+1)
}

func (s *shadowcast) opaque(c Cell) bool {
	return !InBounds(s.grid, c) || !s.grid.IsPassable(c)
}

func (s *shadowcast) run() {
	if InBounds(s.grid, s.origin) {
		s.lit.Put(s.origin)
	}
	for _, m := range octants {
		s.castLight(1, 1.0, 0.0, m[0], m[1], m[2], m[3])
	}
}

// castLight lights one octant from row outward between the start and end
// slopes, recursing past each run of opaque cells.
func (s *shadowcast) castLight(row int, start, end float64, xx, xy, yx, yy int) {
	if start < end {
		return
	}
	radiusSq := s.radius * s.radius
	newStart := start

	for j := row; j <= s.radius; j++ {
		dy := -j
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			c := Cell{s.origin.X + dx*xx + dy*xy, s.origin.Y + dx*yx + dy*yy}
			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			if dx*dx+dy*dy <= radiusSq && InBounds(s.grid, c) {
				s.lit.Put(c)
			}

			opaque := s.opaque(c)
			if blocked {
				if opaque {
					newStart = rSlope
				} else {
					blocked = false
					start = newStart
				}
			} else if opaque && j < s.radius {
				blocked = true
				s.castLight(j+1, start, lSlope, xx, xy, yx, yy)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
