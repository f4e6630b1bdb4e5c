package gamemap

import "tilequery/internal/query"

// Property returns the value of key on layer at (x, y).
func (m *GameMap) Property(x, y int, layer, key string) (string, bool) {
	if !m.InBounds(x, y) {
		return "", false
	}
	return m.Tiles[y][x].Property(layer, key)
}

// TileIndex returns the sheet index on layer at (x, y).
func (m *GameMap) TileIndex(x, y int, layer string) (int, bool) {
	if !m.InBounds(x, y) {
		return 0, false
	}
	i, ok := m.Tiles[y][x].Indices[layer]
	return i, ok
}

// IsPassable reports whether a character could stand on c, ignoring
// occupants.
func (m *GameMap) IsPassable(c query.Cell) bool {
	t, ok := m.tile(c)
	return ok && t.Passable
}

// IsOccupied reports whether a character stands on c.
func (m *GameMap) IsOccupied(c query.Cell) bool {
	_, ok := m.occupants[c]
	return ok
}

// HasObject reports whether an object lies on c.
func (m *GameMap) HasObject(c query.Cell) bool {
	_, ok := m.objects[c]
	return ok
}

// CanPlaceItem reports whether a new object may be put on c: the cell is
// passable and empty, and its Back layer does not carry NoSpawn.
func (m *GameMap) CanPlaceItem(c query.Cell) bool {
	if !m.IsPassable(c) || m.HasObject(c) || m.IsOccupied(c) {
		return false
	}
	_, noSpawn := m.Property(c.X, c.Y, LayerBack, "NoSpawn")
	return !noSpawn
}
