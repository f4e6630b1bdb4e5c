package query

import (
	"fmt"
	"iter"
)

// Cell is one tile coordinate on a grid.
type Cell struct {
	X, Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Grid is the read-only view of a tile map that predicates evaluate against.
// Lookups must be total: out-of-range or missing data reports absent/false
// rather than panicking.
//
// A Grid used with an Engine is also a parse-cache key, so implementations
// must be comparable (in practice, a pointer type).
type Grid interface {
	Width() int
	Height() int
	// Property returns the value of key on the given layer at (x, y).
	Property(x, y int, layer, key string) (string, bool)
	// TileIndex returns the tile-sheet index on the given layer at (x, y).
	TileIndex(x, y int, layer string) (int, bool)
	IsPassable(c Cell) bool
	IsOccupied(c Cell) bool
	HasObject(c Cell) bool
	CanPlaceItem(c Cell) bool
}

// InBounds reports whether c lies inside g.
func InBounds(g Grid, c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.Width() && c.Y < g.Height()
}

// AllCells yields every cell of g in row-major order.
func AllCells(g Grid) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		w, h := g.Width(), g.Height()
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if !yield(Cell{x, y}) {
					return
				}
			}
		}
	}
}

// area returns the number of cells in g.
func area(g Grid) int {
	return g.Width() * g.Height()
}

// clipped drops cells outside g from seq.
func clipped(g Grid, seq iter.Seq[Cell]) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for c := range seq {
			if !InBounds(g, c) {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}
