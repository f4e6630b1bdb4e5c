package query

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Factory builds one predicate from a tokenized clause. tokens[0] is the
// keyword as written; the rest are its arguments.
type Factory func(s *Scope, tokens []string) (Predicate, error)

// Scope is what a factory may use while building: the target grid and a way
// to parse nested expressions with the same registry.
type Scope struct {
	Grid     Grid
	registry *Registry
}

// Registry maps case-insensitive keywords to predicate factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a registry holding every builtin keyword.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("ALL", newConstant(true))
	r.Register("NONE", newConstant(false))

	r.Register("AREA_WH", newAreaWH(false))
	r.Register("!AREA_WH", newAreaWH(true))
	r.Register("AREA_XY", newAreaXY(false))
	r.Register("!AREA_XY", newAreaXY(true))
	r.Register("RADIUS", newDisc(false, false))
	r.Register("!RADIUS", newDisc(false, true))
	r.Register("DIAMOND", newDisc(true, false))
	r.Register("!DIAMOND", newDisc(true, true))
	r.Register("TILES", newCellList(false))
	r.Register("!TILES", newCellList(true))
	r.Register("VISIBLE", newVisible(false))
	r.Register("!VISIBLE", newVisible(true))

	r.Register("NOT", newNot)
	r.Register("SIZE", newFootprint)

	r.Register("PROPERTY", newProperty(false))
	r.Register("!PROPERTY", newProperty(true))
	r.Register("INDEX", newIndex(false))
	r.Register("!INDEX", newIndex(true))

	r.Register("PASSABLE", newFact(passable, true, RankTile))
	r.Register("!PASSABLE", newFact(passable, false, RankTile))
	r.Register("OCCUPIED", newFact(occupied, true, RankCellState))
	r.Register("!OCCUPIED", newFact(occupied, false, RankCellState))
	r.Register("OBJECT", newFact(hasObject, true, RankCellState))
	r.Register("!OBJECT", newFact(hasObject, false, RankCellState))
	r.Register("PLACEABLE", newFact(placeable, true, RankCellState))
	r.Register("!PLACEABLE", newFact(placeable, false, RankCellState))
	return r
}

// Register binds keyword to f, replacing any earlier binding.
func (r *Registry) Register(keyword string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[strings.ToUpper(keyword)] = f
}

// Create builds the predicate named by tokens[0].
func (r *Registry) Create(s *Scope, tokens []string) (Predicate, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty clause: %w", ErrMalformed)
	}
	r.mu.RLock()
	f, ok := r.factories[strings.ToUpper(tokens[0])]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%q: %w", tokens[0], ErrUnknownKeyword)
	}
	return f(s, tokens)
}

// Keywords returns the registered keywords in sorted order.
func (r *Registry) Keywords() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for k := range r.factories {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
