package render

import (
	"github.com/zyedidia/generic/mapset"

	"tilequery/internal/gamemap"
	"tilequery/internal/query"
)

// Glyph is what one map cell looks like in the explorer.
type Glyph struct {
	Text    string
	Matched bool
}

// Overlay computes the glyph for every cell of gmap, marking cells in
// matched. Objects and monsters win over terrain; empty matched floor shows
// the theme's Match glyph.
func Overlay(gmap *gamemap.GameMap, matched mapset.Set[query.Cell], theme Theme) [][]Glyph {
	rows := make([][]Glyph, gmap.Height())
	for y := range rows {
		rows[y] = make([]Glyph, gmap.Width())
		for x := range rows[y] {
			c := query.Cell{X: x, Y: y}
			hit := matched.Has(c)
			rows[y][x] = Glyph{Text: glyphFor(gmap, c, theme, hit), Matched: hit}
		}
	}
	return rows
}

func glyphFor(gmap *gamemap.GameMap, c query.Cell, theme Theme, matched bool) string {
	switch {
	case gmap.IsOccupied(c):
		return theme.Monster
	case gmap.HasObject(c):
		return theme.Object
	}
	tile := gmap.At(c.X, c.Y)
	switch tile.Kind {
	case gamemap.TileWall:
		return theme.Wall
	case gamemap.TileDoor:
		return theme.Door
	case gamemap.TileWater:
		return theme.Water
	}
	if matched {
		return theme.Match
	}
	if _, ok := tile.Indices[gamemap.LayerFront]; ok {
		return theme.Moss
	}
	return theme.Floor
}
