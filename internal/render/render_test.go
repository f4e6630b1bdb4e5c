package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/zyedidia/generic/mapset"

	"tilequery/internal/gamemap"
	"tilequery/internal/query"
)

func newSimScreen(w, h int) tcell.SimulationScreen {
	ss := tcell.NewSimulationScreen("UTF-8")
	_ = ss.Init()
	ss.SetSize(w, h)
	return ss
}

func TestCameraRoundTrip(t *testing.T) {
	cases := []struct {
		name      string
		cellWidth int
	}{
		{"ascii", 1},
		{"emoji", 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCamera(10, 10, tc.cellWidth, 40, 20)
			sx, sy, ok := c.WorldToScreen(10, 10)
			if !ok {
				t.Fatal("center cell should be visible")
			}
			if sy != 10 || sx != 20/tc.cellWidth*tc.cellWidth {
				t.Errorf("center maps to (%d,%d)", sx, sy)
			}
			if wx, wy := c.ScreenToWorld(sx, sy); wx != 10 || wy != 10 {
				t.Errorf("ScreenToWorld = (%d,%d), want (10,10)", wx, wy)
			}
			c.Pan(1, -1)
			if wx, wy := c.ScreenToWorld(sx, sy); wx != 11 || wy != 9 {
				t.Errorf("after Pan, ScreenToWorld = (%d,%d), want (11,9)", wx, wy)
			}
		})
	}
}

func TestCameraClipsPartialCells(t *testing.T) {
	c := &Camera{CellWidth: 2, ViewWidth: 5, ViewHeight: 3}
	if _, _, ok := c.WorldToScreen(2, 0); ok {
		t.Error("a cell that would straddle the right edge should be hidden")
	}
	if _, _, ok := c.WorldToScreen(1, 0); !ok {
		t.Error("cell fully inside the view should be visible")
	}
}

func TestThemeCellWidth(t *testing.T) {
	if w := ThemeByName("ascii").CellWidth(); w != 1 {
		t.Errorf("ascii CellWidth = %d, want 1", w)
	}
	if w := ThemeByName("emoji").CellWidth(); w != 2 {
		t.Errorf("emoji CellWidth = %d, want 2", w)
	}
	if got := ThemeByName("nope").Name; got != "ascii" {
		t.Errorf("unknown theme fell back to %q", got)
	}
}

func smallMap() *gamemap.GameMap {
	m := gamemap.New(4, 3)
	for x := 1; x < 3; x++ {
		m.Set(x, 1, gamemap.MakeFloor())
	}
	m.Set(3, 1, gamemap.MakeDoor())
	return m
}

func TestOverlay(t *testing.T) {
	m := smallMap()
	if err := m.PlaceObject(query.Cell{X: 2, Y: 1}, "crate"); err != nil {
		t.Fatal(err)
	}
	matched := mapset.New[query.Cell]()
	matched.Put(query.Cell{X: 1, Y: 1})
	matched.Put(query.Cell{X: 2, Y: 1})

	rows := Overlay(m, matched, ThemeByName("ascii"))
	var got []string
	for _, row := range rows {
		line := ""
		for _, g := range row {
			line += g.Text
		}
		got = append(got, line)
	}
	want := []string{"####", "#*o+", "####"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, got[i], want[i])
		}
	}
	if !rows[1][2].Matched || rows[1][3].Matched {
		t.Error("Matched flags do not follow the set")
	}
}

func TestDrawFrame(t *testing.T) {
	ss := newSimScreen(20, 10)
	r := NewRenderer(ss, ThemeByName("ascii"))
	r.Camera().OffsetX, r.Camera().OffsetY = 0, 0

	matched := mapset.New[query.Cell]()
	matched.Put(query.Cell{X: 1, Y: 1})
	r.DrawFrame(smallMap(), matched, query.Cell{X: -1, Y: -1})
	r.DrawHUD(Status{MapName: "test", Expression: "TILES 1 1", Cursor: 9, Matches: 1})

	mainc, _, style, _ := ss.GetContent(1, 1)
	if mainc != '*' {
		t.Errorf("matched cell drawn as %q, want '*'", mainc)
	}
	if _, bg, _ := style.Decompose(); bg != tcell.ColorDarkGreen {
		t.Errorf("matched background = %v", bg)
	}
	if mainc, _, _, _ := ss.GetContent(2, 1); mainc != '.' {
		t.Errorf("unmatched floor drawn as %q", mainc)
	}
	if mainc, _, _, _ := ss.GetContent(0, 10-hudRows); mainc != '─' {
		t.Errorf("HUD separator missing, got %q", mainc)
	}
	if mainc, _, _, _ := ss.GetContent(0, 10-hudRows+1); mainc != 'q' {
		t.Errorf("query prompt missing, got %q", mainc)
	}
}
