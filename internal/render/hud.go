package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Status is what the HUD shows under the map.
type Status struct {
	MapName    string
	Expression string
	Cursor     int // rune offset of the edit cursor in Expression
	Matches    int
	Order      []string
	Error      string
	Messages   []string
}

// DrawHUD renders the query line, result summary and message log at the
// bottom of the screen, then shows the frame.
func (r *Renderer) DrawHUD(s Status) {
	_, screenH := r.screen.Size()
	hudY := screenH - hudRows

	r.drawHLine(hudY, tcell.ColorGray)

	prompt := "query> "
	r.drawText(0, hudY+1, prompt+s.Expression, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	cur := runewidth.StringWidth(prompt) + runewidth.StringWidth(string([]rune(s.Expression)[:min(s.Cursor, len([]rune(s.Expression)))]))
	r.screen.ShowCursor(cur, hudY+1)

	summary := fmt.Sprintf("[%s]  %d matching tiles", s.MapName, s.Matches)
	if s.Error != "" {
		summary = fmt.Sprintf("[%s]  %s", s.MapName, s.Error)
	}
	r.drawText(0, hudY+2, summary, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	if len(s.Order) > 0 {
		r.drawText(0, hudY+3, "order: "+strings.Join(s.Order, " > "), tcell.StyleDefault.Foreground(tcell.ColorGray))
	}

	start := max(len(s.Messages)-2, 0)
	for i, msg := range s.Messages[start:] {
		r.drawText(0, hudY+4+i, msg, tcell.StyleDefault.Foreground(tcell.ColorLightCyan))
	}

	r.screen.Show()
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(runewidth.RuneWidth(ch), 1)
	}
}
