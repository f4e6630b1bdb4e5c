package gamemap

import (
	"fmt"

	"tilequery/internal/query"
)

// Rect is an axis-aligned rectangle used for rooms.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Intersects reports whether r overlaps other (inclusive edges).
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}

// GameMap holds the tile grid, rooms, placed objects and occupants for one
// location. It implements query.Grid; use it through a pointer so that it can
// key the engine's parse cache.
type GameMap struct {
	Name  string
	Tiles [][]Tile
	Rooms []Rect

	width, height int

	objects   map[query.Cell]string
	occupants map[query.Cell]string
}

var _ query.Grid = (*GameMap)(nil)

// New creates a GameMap filled with walls.
func New(width, height int) *GameMap {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = MakeWall()
		}
	}
	return &GameMap{
		Tiles:     tiles,
		width:     width,
		height:    height,
		objects:   make(map[query.Cell]string),
		occupants: make(map[query.Cell]string),
	}
}

// InBounds reports whether (x, y) is within the map boundaries.
func (m *GameMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// At returns a pointer to the tile at (x, y). Panics if out of bounds.
func (m *GameMap) At(x, y int) *Tile {
	return &m.Tiles[y][x]
}

// Set replaces the tile at (x, y).
func (m *GameMap) Set(x, y int, t Tile) {
	m.Tiles[y][x] = t
}

func (m *GameMap) tile(c query.Cell) (*Tile, bool) {
	if !m.InBounds(c.X, c.Y) {
		return nil, false
	}
	return &m.Tiles[c.Y][c.X], true
}

// PlaceObject puts a named object on c. It fails when c is outside the map or
// already holds an object.
func (m *GameMap) PlaceObject(c query.Cell, name string) error {
	if !m.InBounds(c.X, c.Y) {
		return fmt.Errorf("place %s at %v: out of bounds", name, c)
	}
	if prev, ok := m.objects[c]; ok {
		return fmt.Errorf("place %s at %v: cell holds %s", name, c, prev)
	}
	m.objects[c] = name
	return nil
}

// RemoveObject clears c and reports whether it held an object.
func (m *GameMap) RemoveObject(c query.Cell) bool {
	_, ok := m.objects[c]
	delete(m.objects, c)
	return ok
}

// ObjectAt returns the name of the object on c.
func (m *GameMap) ObjectAt(c query.Cell) (string, bool) {
	name, ok := m.objects[c]
	return name, ok
}

// Occupy marks c as holding a character. It fails when c is outside the map,
// impassable, or already occupied.
func (m *GameMap) Occupy(c query.Cell, name string) error {
	t, ok := m.tile(c)
	if !ok {
		return fmt.Errorf("occupy %v with %s: out of bounds", c, name)
	}
	if !t.Passable {
		return fmt.Errorf("occupy %v with %s: impassable", c, name)
	}
	if prev, ok := m.occupants[c]; ok {
		return fmt.Errorf("occupy %v with %s: held by %s", c, name, prev)
	}
	m.occupants[c] = name
	return nil
}

// Vacate clears the occupant of c.
func (m *GameMap) Vacate(c query.Cell) {
	delete(m.occupants, c)
}

// OccupantAt returns the name of the character on c.
func (m *GameMap) OccupantAt(c query.Cell) (string, bool) {
	name, ok := m.occupants[c]
	return name, ok
}

// ClearPlacements removes every object and occupant.
func (m *GameMap) ClearPlacements() {
	clear(m.objects)
	clear(m.occupants)
}

// Width returns the number of columns.
func (m *GameMap) Width() int { return m.width }

// Height returns the number of rows.
func (m *GameMap) Height() int { return m.height }
