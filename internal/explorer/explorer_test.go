package explorer

import (
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"tilequery/internal/gamemap"
	"tilequery/internal/query"
	"tilequery/internal/spawn"
)

func newSimScreen() tcell.Screen {
	ss := tcell.NewSimulationScreen("UTF-8")
	ss.SetSize(80, 24)
	_ = ss.Init()
	return ss
}

func roomMap(name string) *gamemap.GameMap {
	m := gamemap.New(6, 5)
	m.Name = name
	for y := 1; y < 4; y++ {
		for x := 1; x < 5; x++ {
			m.Set(x, y, gamemap.MakeFloor())
		}
	}
	return m
}

func newTestExplorer(t *testing.T, opts Options) *Explorer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := query.New(query.WithLogger(logger), query.WithRand(rand.New(rand.NewSource(1))))
	opts.Logger = logger
	x, err := New(newSimScreen(), e, []*gamemap.GameMap{roomMap("a"), roomMap("b")}, opts)
	if err != nil {
		t.Fatal(err)
	}
	return x
}

func typeText(x *Explorer, s string) {
	for _, r := range s {
		x.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func press(x *Explorer, k tcell.Key) bool {
	return x.HandleKey(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func TestKeyToAction(t *testing.T) {
	cases := []struct {
		name string
		ev   *tcell.EventKey
		want Action
	}{
		{"letter edits", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), ActionInsert},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), ActionEvaluate},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionQuit},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), ActionKeywords},
		{"ctrl-r key", tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl), ActionReroll},
		{"ctrl-n rune", tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModCtrl), ActionNextMap},
		{"up is history", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), ActionHistoryPrev},
		{"ctrl-up pans", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModCtrl), ActionPanUp},
		{"f1 unbound", tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), ActionNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := keyToAction(tc.ev); got != tc.want {
				t.Errorf("keyToAction = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEditing(t *testing.T) {
	x := newTestExplorer(t, Options{})
	typeText(x, "PASABLE")
	press(x, tcell.KeyHome)
	for range 3 {
		press(x, tcell.KeyRight)
	}
	typeText(x, "S")
	if got := x.Query(); got != "PASSABLE" {
		t.Errorf("Query = %q after insert, want PASSABLE", got)
	}
	press(x, tcell.KeyEnd)
	press(x, tcell.KeyBackspace2)
	if got := x.Query(); got != "PASSABL" {
		t.Errorf("Query = %q after backspace", got)
	}
	press(x, tcell.KeyCtrlU)
	if got := x.Query(); got != "" {
		t.Errorf("Query = %q after clear", got)
	}
}

func TestEvaluate(t *testing.T) {
	x := newTestExplorer(t, Options{Query: "PASSABLE, AREA_WH 0 0 3 6"})
	press(x, tcell.KeyEnter)
	if got := x.Matched().Size(); got != 6 {
		t.Errorf("matched %d cells, want 6", got)
	}
	if !x.Matched().Has(query.Cell{X: 2, Y: 3}) {
		t.Error("(2,3) should match")
	}
	x.Draw()
}

func TestEvaluateInvalid(t *testing.T) {
	x := newTestExplorer(t, Options{Query: "FLOOR"})
	press(x, tcell.KeyEnter)
	if x.Matched().Size() != 0 {
		t.Error("invalid query should match nothing")
	}
	if !strings.Contains(x.errText, "unknown keyword") {
		t.Errorf("error text = %q", x.errText)
	}
}

func TestHistory(t *testing.T) {
	x := newTestExplorer(t, Options{})
	typeText(x, "ALL")
	press(x, tcell.KeyEnter)
	press(x, tcell.KeyCtrlU)
	typeText(x, "NONE")
	press(x, tcell.KeyEnter)
	press(x, tcell.KeyCtrlU)

	press(x, tcell.KeyUp)
	if got := x.Query(); got != "NONE" {
		t.Errorf("first recall = %q, want NONE", got)
	}
	press(x, tcell.KeyUp)
	if got := x.Query(); got != "ALL" {
		t.Errorf("second recall = %q, want ALL", got)
	}
	press(x, tcell.KeyDown)
	press(x, tcell.KeyDown)
	if got := x.Query(); got != "" {
		t.Errorf("past newest = %q, want empty", got)
	}
}

func TestNextMapAndKeywords(t *testing.T) {
	x := newTestExplorer(t, Options{Query: "ALL"})
	press(x, tcell.KeyCtrlN)
	if got := x.Map().Name; got != "b" {
		t.Errorf("map = %q, want b", got)
	}
	press(x, tcell.KeyCtrlN)
	if got := x.Map().Name; got != "a" {
		t.Errorf("map = %q, want a after wrapping", got)
	}
	press(x, tcell.KeyTab)
	msgs := x.Messages()
	if last := msgs[len(msgs)-1]; !strings.Contains(last, "AREA_WH") || !strings.Contains(last, "SIZE") {
		t.Errorf("keyword message = %q", last)
	}
}

func TestSpawn(t *testing.T) {
	areas := []spawn.Area{{Name: "crates", Query: "PLACEABLE", Spawn: "crate", Count: 3}}
	x := newTestExplorer(t, Options{Query: "OBJECT", Areas: areas})
	press(x, tcell.KeyCtrlS)
	if got := x.Matched().Size(); got != 3 {
		t.Errorf("OBJECT matched %d after spawning, want 3", got)
	}
	press(x, tcell.KeyCtrlX)
	if got := x.Matched().Size(); got != 0 {
		t.Errorf("OBJECT matched %d after clearing, want 0", got)
	}
}

func TestQuit(t *testing.T) {
	x := newTestExplorer(t, Options{})
	if press(x, tcell.KeyEscape) {
		t.Error("Escape should end the session")
	}
}

func TestNewWithoutMaps(t *testing.T) {
	if _, err := New(newSimScreen(), query.New(), nil, Options{}); err == nil {
		t.Error("New with no maps should fail")
	}
}
