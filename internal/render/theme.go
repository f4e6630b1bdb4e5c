package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Theme holds the glyphs and highlight colors used to draw a map.
type Theme struct {
	Name    string
	Wall    string
	Floor   string
	Door    string
	Water   string
	Moss    string
	Object  string
	Monster string
	// Match is drawn over matching cells that are otherwise empty floor.
	Match     string
	MatchBG   tcell.Color
	CursorBG  tcell.Color
	Unmatched tcell.Color
}

// Themes lists the built-in themes by name.
var Themes = map[string]Theme{
	"emoji": {
		Name:      "emoji",
		Wall:      "🧱",
		Floor:     "🟫",
		Door:      "🚪",
		Water:     "🟦",
		Moss:      "🌿",
		Object:    "📦",
		Monster:   "👾",
		Match:     "✅",
		MatchBG:   tcell.ColorDarkGreen,
		CursorBG:  tcell.ColorNavy,
		Unmatched: tcell.ColorGray,
	},
	"ascii": {
		Name:      "ascii",
		Wall:      "#",
		Floor:     ".",
		Door:      "+",
		Water:     "~",
		Moss:      "\"",
		Object:    "o",
		Monster:   "M",
		Match:     "*",
		MatchBG:   tcell.ColorDarkGreen,
		CursorBG:  tcell.ColorNavy,
		Unmatched: tcell.ColorGray,
	},
}

// ThemeByName returns the named theme, falling back to ascii.
func ThemeByName(name string) Theme {
	if t, ok := Themes[name]; ok {
		return t
	}
	return Themes["ascii"]
}

// CellWidth is the widest glyph in the theme, in terminal columns.
func (t Theme) CellWidth() int {
	w := 1
	for _, g := range []string{t.Wall, t.Floor, t.Door, t.Water, t.Moss, t.Object, t.Monster, t.Match} {
		w = max(w, runewidth.StringWidth(g))
	}
	return w
}
