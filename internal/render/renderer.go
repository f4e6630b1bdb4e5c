package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/zyedidia/generic/mapset"

	"tilequery/internal/gamemap"
	"tilequery/internal/query"
)

// hudRows is the number of screen rows reserved below the map.
const hudRows = 6

// Renderer draws a map and query results onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
	theme  Theme
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen, theme Theme) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(0, 0, theme.CellWidth(), w, max(h-hudRows, 1)),
		theme:  theme,
	}
}

// Camera returns the renderer's camera.
func (r *Renderer) Camera() *Camera { return r.camera }

// Resize refits the viewport to the current screen size.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.ViewWidth = w
	r.camera.ViewHeight = max(h-hudRows, 1)
}

// CenterOn recenters the camera on cell (x, y).
func (r *Renderer) CenterOn(x, y int) { r.camera.Center(x, y) }

// DrawFrame clears the screen and draws gmap with matched cells highlighted.
// cursor, when inside the map, gets the cursor background.
func (r *Renderer) DrawFrame(gmap *gamemap.GameMap, matched mapset.Set[query.Cell], cursor query.Cell) {
	r.screen.Clear()
	base := tcell.StyleDefault.Background(tcell.ColorBlack)
	for y, row := range Overlay(gmap, matched, r.theme) {
		for x, g := range row {
			sx, sy, onScreen := r.camera.WorldToScreen(x, y)
			if !onScreen {
				continue
			}
			style := base
			switch {
			case x == cursor.X && y == cursor.Y:
				style = style.Background(r.theme.CursorBG)
			case g.Matched:
				style = style.Background(r.theme.MatchBG)
			case matched.Size() > 0:
				style = style.Foreground(r.theme.Unmatched)
			}
			r.putGlyph(sx, sy, g.Text, style)
		}
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen
// position (x, y), padding to the camera's cell width.
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, runes[0], combc, style)
	for col := runewidth.StringWidth(glyph); col < r.camera.CellWidth; col++ {
		r.screen.SetContent(x+col, y, ' ', nil, style)
	}
}
