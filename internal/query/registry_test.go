package query

import (
	"errors"
	"slices"
	"testing"
)

func TestRegistryCaseInsensitive(t *testing.T) {
	g := newFakeGrid(2, 2)
	for _, expr := range []string{"passable", "Passable", "PASSABLE", "!passable", "Area_Wh 0 0 1 1"} {
		if _, err := Parse(DefaultRegistry(), g, expr); err != nil {
			t.Errorf("Parse(%q): %v", expr, err)
		}
	}
}

func TestRegistryReplace(t *testing.T) {
	r := DefaultRegistry()
	g := newFakeGrid(3, 3)
	r.Register("all", newConstant(false))
	cond, err := Parse(r, g, "ALL")
	if err != nil {
		t.Fatal(err)
	}
	if got := matches(cond); len(got) != 0 {
		t.Errorf("replaced ALL still matched %v", got)
	}
}

func TestRegistryUnknownKeyword(t *testing.T) {
	r := NewRegistry()
	_, err := r.Create(&Scope{Grid: newFakeGrid(1, 1), registry: r}, []string{"ALL"})
	if !errors.Is(err, ErrUnknownKeyword) {
		t.Errorf("error = %v, want ErrUnknownKeyword", err)
	}
	_, err = r.Create(&Scope{Grid: newFakeGrid(1, 1), registry: r}, nil)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("empty clause error = %v, want ErrMalformed", err)
	}
}

func TestRegistryKeywords(t *testing.T) {
	r := NewRegistry()
	r.Register("b", newConstant(true))
	r.Register("A", newConstant(true))
	r.Register("B", newConstant(false))
	if got, want := r.Keywords(), []string{"A", "B"}; !slices.Equal(got, want) {
		t.Errorf("Keywords = %v, want %v", got, want)
	}
	builtin := DefaultRegistry().Keywords()
	for _, kw := range []string{"ALL", "NONE", "AREA_WH", "!AREA_XY", "RADIUS", "!DIAMOND", "TILES", "NOT", "SIZE", "PROPERTY", "!INDEX", "PLACEABLE", "!OCCUPIED", "OBJECT"} {
		if !slices.Contains(builtin, kw) {
			t.Errorf("default registry is missing %s", kw)
		}
	}
}

func TestRegistryNestedUsesSameRegistry(t *testing.T) {
	r := DefaultRegistry()
	r.Register("EVEN", func(s *Scope, tokens []string) (Predicate, error) {
		return &diagonal{grid: s.Grid}, nil
	})
	g := newFakeGrid(3, 3)
	cond, err := Parse(r, g, `NOT "EVEN"`)
	if err != nil {
		t.Fatal(err)
	}
	if cond.Matches(Cell{1, 1}) || !cond.Matches(Cell{0, 1}) {
		t.Error("nested custom keyword was not resolved through the same registry")
	}
}
