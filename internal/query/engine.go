package query

import (
	"iter"
	"log/slog"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// Engine is the entry point hosts use to run tile queries. It owns a
// registry, a parse cache and the random source used for shuffling.
type Engine struct {
	registry *Registry
	cache    *Cache
	logger   *slog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used to report invalid expressions.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRand sets the random source used when randomizing results.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithRegistry replaces the builtin registry.
func WithRegistry(r *Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// New returns an Engine with the builtin keywords registered.
func New(opts ...Option) *Engine {
	e := &Engine{cache: NewCache()}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = DefaultRegistry()
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return e
}

// Register adds or replaces a predicate keyword. Conditions already cached
// keep the factories they were built with.
func (e *Engine) Register(keyword string, f Factory) {
	e.registry.Register(keyword, f)
}

// Registry returns the engine's keyword registry.
func (e *Engine) Registry() *Registry { return e.registry }

// Cache returns the engine's parse cache.
func (e *Engine) Cache() *Cache { return e.cache }

// Condition returns the parsed condition for expr against g, from the cache
// when possible.
func (e *Engine) Condition(expr string, g Grid) (*Condition, error) {
	cond, hit, err := e.cache.Get(e.registry, g, expr)
	if err != nil {
		return nil, err
	}
	if !hit {
		e.logger.Debug("Parsed tile query.", "expression", expr, "order", describe(cond.predicates))
	}
	return cond, nil
}

// MatchingCells lazily yields the cells of g that satisfy expr.
//
// A nil candidates sequence means the whole grid. With randomize set, the
// starting cells are shuffled before filtering, so the first match is a
// uniformly random one. An expression that fails to parse is logged and
// matches nothing.
//
// The sequence is single-pass: ranging over it again yields nothing.
func (e *Engine) MatchingCells(expr string, g Grid, candidates iter.Seq[Cell], randomize bool) iter.Seq[Cell] {
	cond, err := e.Condition(expr, g)
	if err != nil {
		e.logger.Warn("Invalid tile query; it will match no tiles.", "expression", expr, "error", err)
		return func(func(Cell) bool) {}
	}
	var shuffle func([]Cell)
	if randomize {
		shuffle = e.shuffle
	}
	return once(cond.Cells(candidates, shuffle))
}

// First returns up to n randomly chosen cells of g that satisfy expr.
func (e *Engine) First(expr string, g Grid, n int) []Cell {
	var out []Cell
	if n <= 0 {
		return out
	}
	for c := range e.MatchingCells(expr, g, nil, true) {
		out = append(out, c)
		if len(out) == n {
			break
		}
	}
	return out
}

func (e *Engine) shuffle(cells []Cell) {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	e.rng.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })
}

// once lets seq be ranged over a single time.
func once(seq iter.Seq[Cell]) iter.Seq[Cell] {
	var used atomic.Bool
	return func(yield func(Cell) bool) {
		if used.Swap(true) {
			return
		}
		seq(yield)
	}
}
