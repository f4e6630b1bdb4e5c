// Package explorer is an interactive terminal tool for trying tile queries
// against maps. It runs on any tcell.Screen, local or over SSH.
package explorer

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/zyedidia/generic/mapset"

	"tilequery/internal/gamemap"
	"tilequery/internal/query"
	"tilequery/internal/render"
	"tilequery/internal/spawn"
)

const maxMessages = 20

// Options configures an Explorer.
type Options struct {
	Theme  render.Theme
	Areas  []spawn.Area
	Logger *slog.Logger
	// Query is the initial expression shown in the prompt.
	Query string
}

// Explorer holds the state of one interactive session.
type Explorer struct {
	screen   tcell.Screen
	renderer *render.Renderer
	engine   *query.Engine
	maps     []*gamemap.GameMap
	current  int
	areas    []spawn.Area
	logger   *slog.Logger

	input   []rune
	cursor  int
	history []string
	histPos int

	matched  mapset.Set[query.Cell]
	order    []string
	errText  string
	messages []string
}

// New creates an Explorer over maps. The screen must already be initialized.
func New(screen tcell.Screen, engine *query.Engine, maps []*gamemap.GameMap, opts Options) (*Explorer, error) {
	if len(maps) == 0 {
		return nil, fmt.Errorf("explorer: no maps to show")
	}
	if opts.Theme.Name == "" {
		opts.Theme = render.ThemeByName("ascii")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	x := &Explorer{
		screen:   screen,
		renderer: render.NewRenderer(screen, opts.Theme),
		engine:   engine,
		maps:     maps,
		areas:    opts.Areas,
		logger:   opts.Logger,
		input:    []rune(opts.Query),
		matched:  mapset.New[query.Cell](),
	}
	x.cursor = len(x.input)
	x.centerMap()
	x.addMessage("Enter runs the query. Tab lists keywords. Ctrl-R rerolls, Ctrl-N next map, Esc quits.")
	return x, nil
}

// Map returns the map currently shown.
func (x *Explorer) Map() *gamemap.GameMap { return x.maps[x.current] }

// Query returns the expression in the prompt.
func (x *Explorer) Query() string { return string(x.input) }

// Matched returns the cells highlighted by the last evaluation.
func (x *Explorer) Matched() mapset.Set[query.Cell] { return x.matched }

// Messages returns the message log, oldest first.
func (x *Explorer) Messages() []string { return slices.Clone(x.messages) }

// Run draws and handles input until the user quits or the screen closes.
func (x *Explorer) Run() {
	for {
		x.Draw()
		ev := x.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			x.screen.Sync()
			x.renderer.Resize()
		case *tcell.EventKey:
			if !x.HandleKey(ev) {
				return
			}
		}
	}
}

// Draw renders the current map, highlights and HUD.
func (x *Explorer) Draw() {
	x.renderer.DrawFrame(x.Map(), x.matched, query.Cell{X: -1, Y: -1})
	x.renderer.DrawHUD(render.Status{
		MapName:    x.Map().Name,
		Expression: string(x.input),
		Cursor:     x.cursor,
		Matches:    x.matched.Size(),
		Order:      x.order,
		Error:      x.errText,
		Messages:   x.messages,
	})
}

// HandleKey applies one key press. It returns false when the user quits.
func (x *Explorer) HandleKey(ev *tcell.EventKey) bool {
	switch keyToAction(ev) {
	case ActionQuit:
		return false
	case ActionInsert:
		x.input = slices.Insert(x.input, x.cursor, ev.Rune())
		x.cursor++
	case ActionBackspace:
		if x.cursor > 0 {
			x.input = slices.Delete(x.input, x.cursor-1, x.cursor)
			x.cursor--
		}
	case ActionDelete:
		if x.cursor < len(x.input) {
			x.input = slices.Delete(x.input, x.cursor, x.cursor+1)
		}
	case ActionLeft:
		x.cursor = max(x.cursor-1, 0)
	case ActionRight:
		x.cursor = min(x.cursor+1, len(x.input))
	case ActionHome:
		x.cursor = 0
	case ActionEnd:
		x.cursor = len(x.input)
	case ActionClear:
		x.input, x.cursor = nil, 0
	case ActionEvaluate:
		x.remember()
		x.Evaluate(false)
	case ActionReroll:
		x.Evaluate(true)
	case ActionNextMap:
		x.current = (x.current + 1) % len(x.maps)
		x.centerMap()
		x.addMessage("Showing map " + x.Map().Name + ".")
		x.Evaluate(false)
	case ActionKeywords:
		x.addMessage("Keywords: " + strings.Join(x.engine.Registry().Keywords(), " "))
	case ActionHistoryPrev:
		x.recall(-1)
	case ActionHistoryNext:
		x.recall(1)
	case ActionPanUp:
		x.renderer.Camera().Pan(0, -1)
	case ActionPanDown:
		x.renderer.Camera().Pan(0, 1)
	case ActionPanLeft:
		x.renderer.Camera().Pan(-1, 0)
	case ActionPanRight:
		x.renderer.Camera().Pan(1, 0)
	case ActionSpawn:
		x.Spawn()
	case ActionClearSpawns:
		x.Map().ClearPlacements()
		x.addMessage("Cleared objects and monsters.")
		x.Evaluate(false)
	}
	return true
}

// Evaluate runs the prompt's expression against the current map. With
// randomize set, candidates are shuffled first, which changes which
// footprints win.
func (x *Explorer) Evaluate(randomize bool) {
	expr := string(x.input)
	x.matched = mapset.New[query.Cell]()
	x.order, x.errText = nil, ""

	cond, err := x.engine.Condition(expr, x.Map())
	if err != nil {
		x.errText = err.Error()
		x.logger.Debug("Query rejected.", "expression", expr, "error", err)
		return
	}
	x.order = cond.Describe()
	for c := range x.engine.MatchingCells(expr, x.Map(), nil, randomize) {
		x.matched.Put(c)
	}
}

// Spawn runs the configured areas against the current map and reevaluates.
func (x *Explorer) Spawn() {
	if len(x.areas) == 0 {
		x.addMessage("No spawn areas configured.")
		return
	}
	res := spawn.Populate(x.engine, x.Map(), x.areas, x.logger)
	msg := fmt.Sprintf("Spawned %d placements.", len(res.Placements))
	if len(res.Short) > 0 {
		names := make([]string, 0, len(res.Short))
		for name, n := range res.Short {
			names = append(names, fmt.Sprintf("%s -%d", name, n))
		}
		slices.Sort(names)
		msg += " Short: " + strings.Join(names, ", ")
	}
	x.addMessage(msg)
	x.Evaluate(false)
}

func (x *Explorer) centerMap() {
	m := x.Map()
	x.renderer.CenterOn(m.Width()/2, m.Height()/2)
}

func (x *Explorer) remember() {
	expr := string(x.input)
	if expr != "" && (len(x.history) == 0 || x.history[len(x.history)-1] != expr) {
		x.history = append(x.history, expr)
	}
	x.histPos = len(x.history)
}

func (x *Explorer) recall(step int) {
	if len(x.history) == 0 {
		return
	}
	x.histPos = min(max(x.histPos+step, 0), len(x.history))
	if x.histPos == len(x.history) {
		x.input = nil
	} else {
		x.input = []rune(x.history[x.histPos])
	}
	x.cursor = len(x.input)
}

func (x *Explorer) addMessage(msg string) {
	x.messages = append(x.messages, msg)
	if len(x.messages) > maxMessages {
		x.messages = x.messages[len(x.messages)-maxMessages:]
	}
}
